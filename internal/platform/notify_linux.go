//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

// Notify sends a desktop notification over the Freedesktop.org notifications D-Bus interface.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(opts.Urgency)),
	}
	timeout := int32(5000)
	if opts.Urgency == UrgencyCritical {
		timeout = 0 // stays until dismissed
	}
	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		opts.appName(), uint32(0), opts.IconPath, title, body, []string{}, hints, timeout)
	return call.Err
}

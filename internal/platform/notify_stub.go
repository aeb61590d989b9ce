//go:build !linux && !darwin && !windows

package platform

import "log"

// Notify writes the notification to the standard logger on platforms
// without a notification center.
func Notify(title, body string, opts Options) error {
	log.Printf("%s: %s: %s", opts.appName(), title, body)
	return nil
}

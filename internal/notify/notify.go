package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/markchart/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventReject emits a notification when an edit is refused, such as a
	// stamp beyond its limit.
	EventReject Event = "reject"
	// EventExport emits a notification when a chart document is written.
	EventExport Event = "export"
	// EventCopy emits a notification when the composite is copied to the clipboard.
	EventCopy Event = "copy"
)

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
	Urgency  platform.Urgency
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "MarkChart",
		Events: map[Event]EventPreference{
			EventReject: {Template: "Not placed: %s", Urgency: platform.UrgencyNormal},
			EventExport: {Template: "Exported %s", Urgency: platform.UrgencyLow},
			EventCopy:   {Template: "Copied %s to clipboard", Urgency: platform.UrgencyLow},
		},
	}
}

// LoadPreferences reads configuration from environment variables.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("MARKCHART_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			eventPrefs := prefs.Events[event]
			eventPrefs.Template = v
			prefs.Events[event] = eventPrefs
		}
	}
	apply("MARKCHART_NOTIFY_REJECT_TEXT", EventReject)
	apply("MARKCHART_NOTIFY_EXPORT_TEXT", EventExport)
	apply("MARKCHART_NOTIFY_COPY_TEXT", EventCopy)
	return prefs
}

// Sender delivers one notification.
type Sender func(title, body string, opts platform.Options) error

// Notifier sends OS-level notifications based on the configured preferences.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    Sender
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: platform.Notify}
}

// WithSender replaces the platform delivery, mainly for tests.
func (n *Notifier) WithSender(s Sender) *Notifier {
	n.send = s
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Reject reports a refused edit.
func (n *Notifier) Reject(reason error) {
	if !n.enabledFor(EventReject) || reason == nil {
		return
	}
	n.dispatch(EventReject, reason.Error(), platform.Options{})
}

// Export reports a written document. preview, when set, is shown as the
// notification icon.
func (n *Notifier) Export(path string, preview image.Image) {
	if !n.enabledFor(EventExport) {
		return
	}
	detail := strings.TrimSpace(path)
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
	}
	opts := platform.Options{}
	if preview != nil {
		if icon, cleanup, err := createPreview(preview); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = icon
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// Copy sends a clipboard notification.
func (n *Notifier) Copy(detail string) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "chart"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil {
		return false
	}
	if n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	pref := n.prefs.Events[event]
	template := strings.TrimSpace(pref.Template)
	if template == "" {
		return
	}
	body := template
	if strings.Contains(template, "%") {
		body = fmt.Sprintf(template, strings.TrimSpace(detail))
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	opts.Urgency = pref.Urgency
	send := n.send
	if send == nil {
		send = platform.Notify
	}
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "markchart-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}

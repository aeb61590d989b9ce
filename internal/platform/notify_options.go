package platform

// Urgency ranks a notification for notification centers that support it.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// DefaultAppName is reported when Options.AppName is empty.
const DefaultAppName = "MarkChart"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender. DefaultAppName is used when empty.
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	Urgency  Urgency
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

package entities

// DeviceType identifies the kind of client to the server.
type DeviceType string

// DeviceTypeSDK is the device type every SDK client reports.
const DeviceTypeSDK DeviceType = "SDK"

// Default endpoints of the hosted service.
const (
	DefaultAPIURL      = "https://api.bitwarden.com"
	DefaultIdentityURL = "https://identity.bitwarden.com"
	DefaultUserAgent   = "Bitwarden GO-SDK"
)

// ClientSettings is serialized and handed to the library when a client is
// initialized.
type ClientSettings struct {
	IdentityURL string     `json:"identityUrl" validate:"required,url"`
	APIURL      string     `json:"apiUrl" validate:"required,url"`
	UserAgent   string     `json:"userAgent"`
	DeviceType  DeviceType `json:"deviceType"`
}

// WithDefaults returns a copy of s with every empty field set to its default.
func (s ClientSettings) WithDefaults() ClientSettings {
	if s.APIURL == "" {
		s.APIURL = DefaultAPIURL
	}
	if s.IdentityURL == "" {
		s.IdentityURL = DefaultIdentityURL
	}
	if s.UserAgent == "" {
		s.UserAgent = DefaultUserAgent
	}
	if s.DeviceType == "" {
		s.DeviceType = DeviceTypeSDK
	}
	return s
}

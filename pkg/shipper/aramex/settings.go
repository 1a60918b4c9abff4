package aramex

import "github.com/tournevent/aramexbridge/pkg/shipper"

// SettingsProvider supplies the account used by a client. Missing fields are
// sent as empty strings.
type SettingsProvider interface {
	Get() shipper.Credentials
}

// StaticSettings is a SettingsProvider backed by a fixed value.
type StaticSettings shipper.Credentials

// Get implements SettingsProvider.
func (s StaticSettings) Get() shipper.Credentials {
	return shipper.Credentials(s)
}

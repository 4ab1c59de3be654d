package hubspot

import "fmt"

// SyncMode controls which schema changes a delivery may make.
type SyncMode string

const (
	// SyncUpsert creates missing event schemas and adds missing properties.
	SyncUpsert SyncMode = "upsert"
	// SyncAdd creates missing event schemas but never adds properties to existing ones.
	SyncAdd SyncMode = "add"
	// SyncUpdate adds properties to existing schemas but never creates schemas.
	SyncUpdate SyncMode = "update"
)

// ParseSyncMode validates a sync mode. An empty value yields def.
func ParseSyncMode(s string, def SyncMode) (SyncMode, error) {
	switch SyncMode(s) {
	case "":
		return def, nil
	case SyncUpsert, SyncAdd, SyncUpdate:
		return SyncMode(s), nil
	default:
		return "", fmt.Errorf("unsupported sync mode %q (expected upsert, add or update)", s)
	}
}

// Config holds configuration for the HubSpot destination.
type Config struct {
	// Enabled toggles the feature's HTTP routes.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// BaseURL is the HubSpot API root.
	BaseURL string `mapstructure:"base_url" default:"https://api.hubapi.com"`
	// AccessToken is used when a request does not carry its own token.
	AccessToken string `mapstructure:"access_token" default:""`
	// SyncMode is the default sync mode (upsert, add, update).
	SyncMode string `mapstructure:"sync_mode" default:"upsert"`
	// PropertyConcurrency bounds concurrent property-definition requests.
	PropertyConcurrency int `mapstructure:"property_concurrency" default:"4"`
}

package blackbaud

// Config holds configuration for the Raiser's Edge NXT destination.
type Config struct {
	// Enabled toggles the feature's HTTP routes.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// BaseURL is the SKY constituent API root.
	BaseURL string `mapstructure:"base_url" default:"https://api.sky.blackbaud.com/constituent/v1"`
	// GiftBaseURL is the SKY gift API root.
	GiftBaseURL string `mapstructure:"gift_base_url" default:"https://api.sky.blackbaud.com/gift/v1"`
	// AccessToken is used when a request does not carry its own token.
	AccessToken string `mapstructure:"access_token" default:""`
	// SubscriptionKey is the SKY API subscription key.
	SubscriptionKey string `mapstructure:"subscription_key" default:""`
}

// Settings carries per-request credentials. Empty values fall back to Config.
type Settings struct {
	AccessToken     string `json:"access_token,omitempty"`
	SubscriptionKey string `json:"subscription_key,omitempty"`
}

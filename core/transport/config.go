package transport

// Config holds configuration for outbound destination requests.
type Config struct {
	// TimeoutSeconds bounds a single request when the context has no earlier deadline.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"destination-sync"`
}

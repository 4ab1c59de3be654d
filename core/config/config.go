package config

import (
	"fmt"
	"reflect"
	"strings"

	"destination-sync/core/logger"
	"destination-sync/core/reconcile"
	"destination-sync/core/server"
	"destination-sync/core/transport"
	"destination-sync/feature/blackbaud"
	"destination-sync/feature/hubspot"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Transport holds configuration for outbound destination requests.
	Transport transport.Config `mapstructure:"transport"`
	// Cache holds configuration for the event schema cache.
	Cache reconcile.CacheConfig `mapstructure:"cache"`
	// HubSpot holds configuration for the HubSpot destination.
	HubSpot hubspot.Config `mapstructure:"hubspot"`
	// Blackbaud holds configuration for the Raiser's Edge NXT destination.
	Blackbaud blackbaud.Config `mapstructure:"blackbaud"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks values that cannot be expressed as defaults.
func (c *Config) Validate() error {
	if _, err := hubspot.ParseSyncMode(c.HubSpot.SyncMode, hubspot.SyncUpsert); err != nil {
		return fmt.Errorf("hubspot: %w", err)
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache: max_entries must not be negative")
	}
	if c.HubSpot.PropertyConcurrency < 0 {
		return fmt.Errorf("hubspot: property_concurrency must not be negative")
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}

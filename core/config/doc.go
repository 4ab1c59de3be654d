// Package config provides configuration management for the service.
//
// It uses Viper for loading configuration from environment variables and a
// .env file (loaded with godotenv, overriding the process environment).
// Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port, API key, read timeout
//   - Log: logging level and format
//   - Transport: outbound request timeout and user agent
//   - Cache: schema cache capacity and TTL
//   - HubSpot: API root, token, default sync mode, property concurrency
//   - Blackbaud: SKY API roots, token, subscription key
//
// Environment keys are SECTION_KEY, e.g. HUBSPOT_SYNC_MODE or CACHE_TTL.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config

// Package logger builds the zap logger shared by the service and the CLI.
//
// Loggers are derived, never global to a feature: the request handler adds
// the ray id, the services add the destination name, and the event
// reconciler adds the scope id of the calling configuration.
//
// # Helpers
//
//   - WithRayID: ray id from the fiber locals set by the rayid middleware
//   - WithScope: scope id, omitted when empty
//   - WithDestination: destination name ("hubspot", "blackbaud")
//   - FaultFields: outcome label, fault code and remote status for a failed delivery
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	l := logger.WithRayID(log, c)
//	l.Warn("Event delivery failed", logger.FaultFields(err)...)
package logger

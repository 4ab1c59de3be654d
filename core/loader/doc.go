// Package loader mounts destination features on the fiber app.
//
// A destination is a Feature:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager keeps registration order. LoadAll skips features whose config
// disables them and returns the names it mounted, so start-up can log which
// destinations are live. The first Load error stops loading.
package loader

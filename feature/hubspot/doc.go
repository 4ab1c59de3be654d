// Package hubspot delivers custom behavioral events to HubSpot.
//
// Every delivery first makes sure the event definition can receive it. The
// desired schema is inferred from the payload (numbers, booleans, objects and
// strings, with strings refined to date, datetime or plain). It is compared
// with the cached definition, then with the remote one, and the remote
// definition is created or extended as far as the sync mode allows:
//
//   - upsert: create missing definitions and add missing properties
//   - add: create missing definitions only
//   - update: add missing properties only
//
// Confirmed definitions are cached per scope id. Concurrent deliveries for the
// same scope and schema share one remote round trip.
//
// Failures are returned as faults (see core/fault): a type conflict is a
// validation fault, a change forbidden by the sync mode is fatal, and rate
// limits and server errors are retryable.
package hubspot

// Package utils contains small value-conversion helpers.
//
// They turn loosely-typed JSON values into comparable strings for the match
// resolver, and read optional pointer flags used by destination payloads.
package utils

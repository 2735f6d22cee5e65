package driven

import "time"

// IDGenerator issues document identifiers.
type IDGenerator interface {
	// Next returns a 17-digit identifier: YYYYMMDDhhmmss plus a 3-digit suffix.
	// The base is the given time; a zero time means now.
	// Identifiers are never repeated while the generator is alive.
	Next(base time.Time) string
}

package sessionstore

import "time"

// Clock is the store's time source. Every TTL computation and LastModified
// stamp goes through it, so tests can substitute a manual clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

package tool

import "time"

// Clock abstracts wall time so stamping and scheduling can be tested
// with a fake.
type Clock interface {
	Now() time.Time
}

// RealClock is the Clock backed by the system time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

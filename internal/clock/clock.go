package clock

import "time"

// Clock abstracts time for the poller and the visibility debounce so tests
// can drive both without sleeping.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Real returns a Clock backed by the time package.
func Real() Clock {
	return realClock{}
}

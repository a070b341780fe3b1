package transform

import "time"

// Clock supplies the current time used for synthesized publish dates.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

func SystemClock() Clock { return ClockFunc(time.Now) }

func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

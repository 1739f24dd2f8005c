// internal/game/schedule.go
//
// Delayed callbacks with cancellation tokens. The controller schedules the
// automatic reveal→load transition through a Scheduler so tests can fire
// it deterministically.

package game

import "time"

// Cancel stops a scheduled callback. It reports whether the call prevented
// the callback from running. Calling it more than once is safe.
type Cancel func() bool

// Scheduler runs f once after d unless cancelled first.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Cancel
}

// timerScheduler is the production Scheduler backed by time.AfterFunc.
type timerScheduler struct{}

// NewTimerScheduler returns a Scheduler using real timers.
func NewTimerScheduler() Scheduler { return timerScheduler{} }

func (timerScheduler) AfterFunc(d time.Duration, f func()) Cancel {
	t := time.AfterFunc(d, f)
	return t.Stop
}

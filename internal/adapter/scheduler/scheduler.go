package scheduler

import (
	"time"

	"github.com/seu-repo/habitua/internal/ports"
)

// TimerScheduler implements ports.Scheduler on top of time.AfterFunc. Each
// Schedule returns a cancel function; cancelling after the callback fired
// is a no-op.
type TimerScheduler struct{}

func New() *TimerScheduler {
	return &TimerScheduler{}
}

func (s *TimerScheduler) Schedule(delay time.Duration, fn func()) ports.CancelFunc {
	timer := time.AfterFunc(delay, fn)
	return func() {
		timer.Stop()
	}
}

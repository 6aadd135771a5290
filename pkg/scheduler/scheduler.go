package scheduler

import (
	"context"
	"sync"
	"time"

	"chaos-service/pkg/log"
	"chaos-service/pkg/utils/retry"
)

// CompensatingAction reverses the effect of a scenario after its duration
// elapses, e.g. scaling a deployment back to its baseline replica count.
type CompensatingAction struct {
	Description string
	Run         func(ctx context.Context) error
}

// Scheduler registers single-fire delayed actions. Scheduling never blocks
// the caller and the outcome of a fired action is never reported back to the
// originating request; by the time it fires nobody is listening anymore.
type Scheduler interface {
	Schedule(action CompensatingAction, delay time.Duration)
}

const (
	fireAttempts = 3
	fireWait     = 2 * time.Second
	fireTimeout  = 60 * time.Second
)

// TimerScheduler fires each registered action once from a detached goroutine.
// A failure while firing is retried a bounded number of times, then logged
// and dropped; it is terminal only for that action, never for the process.
type TimerScheduler struct {
	wg   sync.WaitGroup
	quit chan struct{}
	once sync.Once
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{
		quit: make(chan struct{}),
	}
}

func (s *TimerScheduler) Schedule(action CompensatingAction, delay time.Duration) {
	log.InfoWithValues("[Compensation]: Scheduled compensating action", map[string]interface{}{
		"Action": action.Description,
		"Delay":  delay.String(),
	})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			s.fire(action)
		case <-s.quit:
			log.Warnf("[Compensation]: Abandoning pending action '%v', scheduler stopped", action.Description)
		}
	}()
}

func (s *TimerScheduler) fire(action CompensatingAction) {
	err := retry.
		Times(fireAttempts).
		Wait(fireWait).
		Try(func(attempt uint) error {
			ctx, cancel := context.WithTimeout(context.Background(), fireTimeout)
			defer cancel()
			return action.Run(ctx)
		})
	if err != nil {
		// logged only, no caller is still listening
		log.ErrorWithValues("[Compensation]: Compensating action failed permanently", map[string]interface{}{
			"Action": action.Description,
			"Reason": err.Error(),
		})
		return
	}
	log.Infof("[Compensation]: Compensating action '%v' completed", action.Description)
}

// Drain waits for every registered action to fire and finish. Used by
// one-shot runs that must not exit before their compensation has happened.
func (s *TimerScheduler) Drain() {
	s.wg.Wait()
}

// Stop abandons all pending actions and waits for in-flight ones to finish.
// Used on shutdown and in tests.
func (s *TimerScheduler) Stop() {
	s.once.Do(func() {
		close(s.quit)
	})
	s.wg.Wait()
}

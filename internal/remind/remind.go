package remind

import (
	"time"

	"github.com/knozaki/trak/internal/model"
)

// Scheduler fires a notification callback when a task's deadline date is
// reached. The store only holds reminder notes; all timer ownership lives
// here, outside the core's contract.
type Scheduler struct {
	notify func(model.Task)
	now    func() time.Time
	timers map[string]*time.Timer
}

// NewScheduler creates a scheduler that invokes notify for each due task.
func NewScheduler(notify func(model.Task)) *Scheduler {
	return &Scheduler{
		notify: notify,
		now:    time.Now,
		timers: make(map[string]*time.Timer),
	}
}

// Schedule arms a timer for the task's deadline, replacing any timer
// already armed for the same task ID. Deadlines that do not parse, or that
// lie in the past, are not scheduled and return false.
func (s *Scheduler) Schedule(t model.Task) bool {
	due, err := time.Parse(model.DeadlineLayout, t.Deadline)
	if err != nil {
		return false
	}
	delay := due.Sub(s.now())
	if delay <= 0 {
		return false
	}
	s.Cancel(t.ID)
	s.timers[t.ID] = time.AfterFunc(delay, func() {
		s.notify(t)
	})
	return true
}

// Cancel disarms the timer for a task ID, if one is armed.
func (s *Scheduler) Cancel(id string) {
	if tm, ok := s.timers[id]; ok {
		tm.Stop()
		delete(s.timers, id)
	}
}

// Stop disarms every timer.
func (s *Scheduler) Stop() {
	for id, tm := range s.timers {
		tm.Stop()
		delete(s.timers, id)
	}
}

package model

import "time"

// StatusCompleted is the reserved status value set when a task is completed.
const StatusCompleted = "Completed"

// DeadlineLayout is the expected form of a task deadline. Deadlines are
// stored as plain strings and only parsed where calendar meaning is needed.
const DeadlineLayout = "2006-01-02"

// Task represents a single task held in the store.
type Task struct {
	ID         string
	Name       string
	Deadline   string
	Status     string
	Priority   int
	AssignedTo *string
	Reminder   *string
}

// IsCompleted returns true if the task carries the reserved completed status.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsUpcoming returns true if the deadline, read as a calendar date, lies
// strictly after ref. Deadlines that do not parse are never upcoming.
func (t Task) IsUpcoming(ref time.Time) bool {
	d, err := time.Parse(DeadlineLayout, t.Deadline)
	if err != nil {
		return false
	}
	return d.After(ref)
}

// MonthKey returns the "yyyy-MM" bucket of the deadline. ok is false when
// the deadline is too short to carry a month prefix.
func (t Task) MonthKey() (string, bool) {
	if len(t.Deadline) < 7 {
		return "", false
	}
	return t.Deadline[:7], true
}

// IsOverdue returns true if the task is past its deadline and not completed.
// The comparison is lexical, matching how deadlines are sorted.
func (t Task) IsOverdue() bool {
	if t.IsCompleted() || t.Deadline == "" {
		return false
	}
	return t.Deadline < time.Now().Format(DeadlineLayout)
}

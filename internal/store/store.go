package store

import (
	"sort"
	"strings"
	"time"

	"github.com/knozaki/trak/internal/model"
)

// TaskStore manages the in-memory task collection, keyed by task ID.
// An insertion-order slice backs every listing operation, so iteration,
// first-match searches and sort tie-breaks are deterministic.
type TaskStore struct {
	tasks map[string]model.Task
	order []string
}

// NewTaskStore creates an empty store.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string]model.Task)}
}

// Add inserts a task, or silently overwrites an existing task with the
// same ID. An overwrite keeps the task's original insertion position.
func (s *TaskStore) Add(t model.Task) {
	if _, exists := s.tasks[t.ID]; !exists {
		s.order = append(s.order, t.ID)
	}
	s.tasks[t.ID] = t
}

// Remove deletes a task by ID. Returns false if no such task exists.
func (s *TaskStore) Remove(id string) bool {
	if _, exists := s.tasks[id]; !exists {
		return false
	}
	delete(s.tasks, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Get retrieves a task by ID.
func (s *TaskStore) Get(id string) (model.Task, bool) {
	t, ok := s.tasks[id]
	return t, ok
}

// Len returns the number of stored tasks.
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// Edit replaces all mutable fields of a task. Returns false, with no
// mutation, if the task does not exist. The ID, assignee and reminder are
// untouched.
func (s *TaskStore) Edit(id, name, deadline, status string, priority int) bool {
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	t.Name = name
	t.Deadline = deadline
	t.Status = status
	t.Priority = priority
	s.tasks[id] = t
	return true
}

// List returns all tasks in insertion order.
func (s *TaskStore) List() []model.Task {
	out := make([]model.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tasks[id])
	}
	return out
}

// FindByName returns the first task, in insertion order, whose name matches
// case-insensitively.
func (s *TaskStore) FindByName(name string) (model.Task, bool) {
	for _, id := range s.order {
		if strings.EqualFold(s.tasks[id].Name, name) {
			return s.tasks[id], true
		}
	}
	return model.Task{}, false
}

// FindAllByName returns every task whose name matches case-insensitively.
func (s *TaskStore) FindAllByName(name string) []model.Task {
	var out []model.Task
	for _, id := range s.order {
		if strings.EqualFold(s.tasks[id].Name, name) {
			out = append(out, s.tasks[id])
		}
	}
	return out
}

// FindByDeadline returns the first task whose deadline string equals date
// exactly. No date parsing or tolerance is applied.
func (s *TaskStore) FindByDeadline(date string) (model.Task, bool) {
	for _, id := range s.order {
		if s.tasks[id].Deadline == date {
			return s.tasks[id], true
		}
	}
	return model.Task{}, false
}

// FindAllByDeadline returns every task whose deadline string equals date.
func (s *TaskStore) FindAllByDeadline(date string) []model.Task {
	var out []model.Task
	for _, id := range s.order {
		if s.tasks[id].Deadline == date {
			out = append(out, s.tasks[id])
		}
	}
	return out
}

// SortedByPriority returns all tasks ordered by ascending priority.
// Equal priorities keep insertion order.
func (s *TaskStore) SortedByPriority() []model.Task {
	out := s.List()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// SortedByDeadline returns all tasks ordered by ascending deadline using
// plain string comparison. The order is lexical, not chronological:
// "2024-2-1" does not sort next to "2024-02-01".
func (s *TaskStore) SortedByDeadline() []model.Task {
	out := s.List()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Deadline < out[j].Deadline
	})
	return out
}

// MarkCompleted sets the task's status to the reserved completed value.
// Returns false if the task does not exist.
func (s *TaskStore) MarkCompleted(id string) bool {
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	t.Status = model.StatusCompleted
	s.tasks[id] = t
	return true
}

// FilterByStatus returns every task whose status matches case-insensitively.
func (s *TaskStore) FilterByStatus(status string) []model.Task {
	var out []model.Task
	for _, id := range s.order {
		if strings.EqualFold(s.tasks[id].Status, status) {
			out = append(out, s.tasks[id])
		}
	}
	return out
}

// Assign records the username on the task. The username is not checked
// against the user directory. Returns false if the task does not exist.
func (s *TaskStore) Assign(id, username string) bool {
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	t.AssignedTo = &username
	s.tasks[id] = t
	return true
}

// AssignedTo returns every task assigned to the given username. The result
// is computed by scanning the task collection; there is no separate
// per-user index to fall out of sync.
func (s *TaskStore) AssignedTo(username string) []model.Task {
	var out []model.Task
	for _, id := range s.order {
		t := s.tasks[id]
		if t.AssignedTo != nil && *t.AssignedTo == username {
			out = append(out, t)
		}
	}
	return out
}

// SetReminder stores a reminder note on the task. Returns false if the task
// does not exist.
func (s *TaskStore) SetReminder(id, note string) bool {
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	t.Reminder = &note
	s.tasks[id] = t
	return true
}

// Upcoming returns every task whose deadline, read as a calendar date, lies
// strictly after ref. Tasks with unparseable deadlines are excluded.
func (s *TaskStore) Upcoming(ref time.Time) []model.Task {
	var out []model.Task
	for _, id := range s.order {
		if s.tasks[id].IsUpcoming(ref) {
			out = append(out, s.tasks[id])
		}
	}
	return out
}

// CountByMonth buckets tasks by the "yyyy-MM" prefix of their deadline.
// Tasks with deadlines too short to carry a month prefix are skipped.
func (s *TaskStore) CountByMonth() map[string]int {
	out := make(map[string]int)
	for _, t := range s.tasks {
		if key, ok := t.MonthKey(); ok {
			out[key]++
		}
	}
	return out
}

// CountByStatus groups tasks by their exact status string.
func (s *TaskStore) CountByStatus() map[string]int {
	out := make(map[string]int)
	for _, t := range s.tasks {
		out[t.Status]++
	}
	return out
}

package store

import (
	"testing"
	"time"

	"github.com/knozaki/trak/internal/model"
)

func newTask(id, name, deadline, status string, priority int) model.Task {
	return model.Task{ID: id, Name: name, Deadline: deadline, Status: status, Priority: priority}
}

func seededStore(t *testing.T, tasks ...model.Task) *TaskStore {
	t.Helper()
	s := NewTaskStore()
	for _, tk := range tasks {
		s.Add(tk)
	}
	return s
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestAddRemoveLookup(t *testing.T) {
	s := seededStore(t, newTask("T1", "Write report", "2024-03-01", "Pending", 2))

	if !s.Remove("T1") {
		t.Fatal("Remove() = false for existing task")
	}
	if _, ok := s.Get("T1"); ok {
		t.Error("Get() found task after removal")
	}
	if s.Remove("T1") {
		t.Error("Remove() = true for absent task")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestAddOverwritesSameID(t *testing.T) {
	s := seededStore(t,
		newTask("T1", "first", "2024-01-01", "Pending", 1),
		newTask("T1", "second", "2024-02-02", "Active", 5),
	)

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	got, ok := s.Get("T1")
	if !ok {
		t.Fatal("Get() did not find task")
	}
	if got.Name != "second" || got.Deadline != "2024-02-02" || got.Priority != 5 {
		t.Errorf("second Add did not win: got %+v", got)
	}
}

func TestEdit(t *testing.T) {
	s := seededStore(t, newTask("T1", "old", "2024-01-01", "Pending", 3))

	if !s.Edit("T1", "new", "2024-06-01", "Active", 1) {
		t.Fatal("Edit() = false for existing task")
	}
	got, _ := s.Get("T1")
	if got.Name != "new" || got.Deadline != "2024-06-01" || got.Status != "Active" || got.Priority != 1 {
		t.Errorf("Edit did not replace all fields: got %+v", got)
	}

	if s.Edit("missing", "x", "x", "x", 0) {
		t.Error("Edit() = true for absent task")
	}
	got, _ = s.Get("T1")
	if got.Name != "new" {
		t.Error("failed Edit mutated the store")
	}
}

func TestEditKeepsAssignmentAndReminder(t *testing.T) {
	s := seededStore(t, newTask("T1", "task", "2024-01-01", "Pending", 1))
	s.Assign("T1", "alice")
	s.SetReminder("T1", "call first")

	s.Edit("T1", "renamed", "2024-02-01", "Active", 2)

	got, _ := s.Get("T1")
	if got.AssignedTo == nil || *got.AssignedTo != "alice" {
		t.Error("Edit dropped the assignee")
	}
	if got.Reminder == nil || *got.Reminder != "call first" {
		t.Error("Edit dropped the reminder")
	}
}

func TestListInsertionOrder(t *testing.T) {
	s := seededStore(t,
		newTask("b", "second", "2024-01-02", "Pending", 2),
		newTask("a", "first", "2024-01-01", "Pending", 1),
		newTask("c", "third", "2024-01-03", "Pending", 3),
	)

	got := ids(s.List())
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List() order = %v, want %v", got, want)
		}
	}
}

func TestFindByName(t *testing.T) {
	s := seededStore(t,
		newTask("T1", "Fix Bug", "2024-01-01", "Pending", 1),
		newTask("T2", "fix bug", "2024-02-02", "Active", 2),
		newTask("T3", "Other", "2024-03-03", "Pending", 3),
	)

	got, ok := s.FindByName("FIX BUG")
	if !ok {
		t.Fatal("FindByName() found nothing")
	}
	if got.ID != "T1" {
		t.Errorf("FindByName() = %s, want first match T1", got.ID)
	}

	all := s.FindAllByName("fix bug")
	if len(all) != 2 {
		t.Fatalf("FindAllByName() returned %d tasks, want 2", len(all))
	}

	if _, ok := s.FindByName("nope"); ok {
		t.Error("FindByName() = ok for absent name")
	}
}

func TestFindByDeadlineIsExactStringMatch(t *testing.T) {
	s := seededStore(t,
		newTask("T1", "a", "2024-02-01", "Pending", 1),
		newTask("T2", "b", "2024-2-1", "Pending", 2),
	)

	got, ok := s.FindByDeadline("2024-2-1")
	if !ok || got.ID != "T2" {
		t.Errorf("FindByDeadline(2024-2-1) = %v, %v; want T2", got.ID, ok)
	}
	if all := s.FindAllByDeadline("2024-02-01"); len(all) != 1 || all[0].ID != "T1" {
		t.Errorf("FindAllByDeadline(2024-02-01) = %v, want [T1]", ids(all))
	}
}

func TestSortedByPriority(t *testing.T) {
	s := seededStore(t,
		newTask("T1", "Write report", "2024-03-01", "Pending", 2),
		newTask("T2", "Fix bug", "2024-01-15", "Pending", 1),
	)

	got := ids(s.SortedByPriority())
	if got[0] != "T2" || got[1] != "T1" {
		t.Errorf("SortedByPriority() = %v, want [T2 T1]", got)
	}
}

func TestSortedByPriorityStableOnTies(t *testing.T) {
	s := seededStore(t,
		newTask("x", "a", "2024-01-01", "Pending", 1),
		newTask("y", "b", "2024-01-02", "Pending", 1),
		newTask("z", "c", "2024-01-03", "Pending", 0),
	)

	got := ids(s.SortedByPriority())
	want := []string{"z", "x", "y"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortedByPriority() = %v, want %v (insertion order on ties)", got, want)
		}
	}

	for i := 1; i < len(got); i++ {
		a, _ := s.Get(got[i-1])
		b, _ := s.Get(got[i])
		if a.Priority > b.Priority {
			t.Fatal("SortedByPriority() is not non-decreasing")
		}
	}
}

func TestSortedByDeadlineIsLexical(t *testing.T) {
	s := seededStore(t,
		newTask("T1", "Write report", "2024-03-01", "Pending", 2),
		newTask("T2", "Fix bug", "2024-01-15", "Pending", 1),
	)
	got := ids(s.SortedByDeadline())
	if got[0] != "T2" || got[1] != "T1" {
		t.Errorf("SortedByDeadline() = %v, want [T2 T1]", got)
	}

	// Unpadded dates sort as strings, not as dates: "2024-2-1" > "2024-02-01".
	s = seededStore(t,
		newTask("a", "padded", "2024-02-01", "Pending", 1),
		newTask("b", "unpadded", "2024-2-1", "Pending", 1),
	)
	got = ids(s.SortedByDeadline())
	if got[0] != "a" || got[1] != "b" {
		t.Errorf("SortedByDeadline() = %v, want lexical order [a b]", got)
	}
}

func TestMarkCompleted(t *testing.T) {
	s := seededStore(t, newTask("T1", "task", "2024-01-01", "Pending", 1))

	if s.MarkCompleted("missing") {
		t.Error("MarkCompleted() = true for absent task")
	}
	if !s.MarkCompleted("T1") {
		t.Fatal("MarkCompleted() = false for existing task")
	}
	got, _ := s.Get("T1")
	if got.Status != "Completed" {
		t.Errorf("status = %q, want %q", got.Status, "Completed")
	}
}

func TestFilterByStatus(t *testing.T) {
	s := seededStore(t,
		newTask("T1", "a", "2024-01-01", "Pending", 1),
		newTask("T2", "b", "2024-01-02", "pending", 2),
		newTask("T3", "c", "2024-01-03", "Completed", 3),
	)

	got := s.FilterByStatus("PENDING")
	if len(got) != 2 {
		t.Errorf("FilterByStatus() returned %d tasks, want 2", len(got))
	}
	if got := s.FilterByStatus("unknown"); len(got) != 0 {
		t.Errorf("FilterByStatus(unknown) returned %d tasks, want 0", len(got))
	}
}

func TestAssign(t *testing.T) {
	s := seededStore(t,
		newTask("T1", "a", "2024-01-01", "Pending", 1),
		newTask("T2", "b", "2024-01-02", "Pending", 2),
	)

	// No referential check: any username is accepted.
	if !s.Assign("T1", "nobody-registered") {
		t.Fatal("Assign() = false for existing task")
	}
	if s.Assign("missing", "alice") {
		t.Error("Assign() = true for absent task")
	}

	s.Assign("T2", "alice")
	got := s.AssignedTo("alice")
	if len(got) != 1 || got[0].ID != "T2" {
		t.Errorf("AssignedTo(alice) = %v, want [T2]", ids(got))
	}
	if got := s.AssignedTo("bob"); len(got) != 0 {
		t.Errorf("AssignedTo(bob) = %v, want empty", ids(got))
	}
}

func TestSetReminder(t *testing.T) {
	s := seededStore(t, newTask("T1", "a", "2024-01-01", "Pending", 1))

	if s.SetReminder("missing", "note") {
		t.Error("SetReminder() = true for absent task")
	}
	if !s.SetReminder("T1", "call ahead") {
		t.Fatal("SetReminder() = false for existing task")
	}
	got, _ := s.Get("T1")
	if got.Reminder == nil || *got.Reminder != "call ahead" {
		t.Errorf("reminder = %v, want %q", got.Reminder, "call ahead")
	}
}

func TestUpcoming(t *testing.T) {
	ref := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	s := seededStore(t,
		newTask("past", "a", "2024-01-15", "Pending", 1),
		newTask("future", "b", "2024-03-01", "Pending", 2),
		newTask("bad", "c", "not-a-date", "Pending", 3),
	)

	got := s.Upcoming(ref)
	if len(got) != 1 || got[0].ID != "future" {
		t.Errorf("Upcoming() = %v, want [future]", ids(got))
	}
}

func TestUpcomingIsStrictlyAfter(t *testing.T) {
	// A deadline parses to midnight; a ref at that exact instant is not "before" it.
	ref := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := seededStore(t, newTask("T1", "a", "2024-03-01", "Pending", 1))

	if got := s.Upcoming(ref); len(got) != 0 {
		t.Errorf("Upcoming() included a deadline equal to the reference instant")
	}
}

func TestCountByMonth(t *testing.T) {
	s := seededStore(t,
		newTask("T1", "a", "2024-01-15", "Pending", 1),
		newTask("T2", "b", "2024-01-31", "Pending", 2),
		newTask("T3", "c", "2024-02-01", "Pending", 3),
		newTask("T4", "d", "soon", "Pending", 4), // too short for a month bucket
	)

	got := s.CountByMonth()
	if got["2024-01"] != 2 || got["2024-02"] != 1 {
		t.Errorf("CountByMonth() = %v", got)
	}
	if len(got) != 2 {
		t.Errorf("CountByMonth() produced %d buckets, want 2", len(got))
	}
}

func TestCountByStatus(t *testing.T) {
	s := seededStore(t,
		newTask("T1", "a", "2024-01-01", "Pending", 1),
		newTask("T2", "b", "2024-01-02", "pending", 2),
		newTask("T3", "c", "2024-01-03", "Completed", 3),
	)

	got := s.CountByStatus()
	// Grouping is by exact string: "Pending" and "pending" are distinct.
	if got["Pending"] != 1 || got["pending"] != 1 || got["Completed"] != 1 {
		t.Errorf("CountByStatus() = %v", got)
	}
}

func TestIndependentStores(t *testing.T) {
	a := seededStore(t, newTask("T1", "a", "2024-01-01", "Pending", 1))
	b := NewTaskStore()

	if b.Len() != 0 {
		t.Error("a fresh store saw another store's tasks")
	}
	if a.Len() != 1 {
		t.Error("seeded store lost its task")
	}
}

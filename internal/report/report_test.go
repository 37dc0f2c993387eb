package report

import (
	"strings"
	"testing"

	"github.com/knozaki/trak/internal/model"
)

func TestGenerate(t *testing.T) {
	alice := "alice"
	note := "start early"
	tasks := []model.Task{
		{ID: "T1", Name: "Write report", Deadline: "2024-03-01", Status: "Pending", Priority: 2, AssignedTo: &alice, Reminder: &note},
		{ID: "T2", Name: "Fix bug", Deadline: "2024-01-15", Status: "Completed", Priority: 1},
	}
	byStatus := map[string]int{"Pending": 1, "Completed": 1}
	byMonth := map[string]int{"2024-03": 1, "2024-01": 1}

	out := Generate(tasks, byStatus, byMonth)

	for _, want := range []string{
		"[ ] T1: Write report (due 2024-03-01, Pending, priority 2) assigned to alice reminder: start early",
		"[x] T2: Fix bug (due 2024-01-15, Completed, priority 1)",
		"Completed: 1",
		"2024-01: 1",
		"2024-03: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\nreport:\n%s", want, out)
		}
	}
}

func TestGenerateCountsAreSorted(t *testing.T) {
	byMonth := map[string]int{"2024-03": 1, "2024-01": 2, "2024-02": 3}
	out := Generate(nil, nil, byMonth)

	jan := strings.Index(out, "2024-01")
	feb := strings.Index(out, "2024-02")
	mar := strings.Index(out, "2024-03")
	if !(jan < feb && feb < mar) {
		t.Errorf("month counts not sorted:\n%s", out)
	}
}

func TestGenerateEmpty(t *testing.T) {
	out := Generate(nil, nil, nil)
	if !strings.Contains(out, "No tasks.") {
		t.Errorf("empty report missing placeholder:\n%s", out)
	}
}

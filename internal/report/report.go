package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knozaki/trak/internal/model"
)

// Generate renders a plain-text report of all tasks followed by the
// analytics tables. The UI copies this to the clipboard.
func Generate(tasks []model.Task, byStatus, byMonth map[string]int) string {
	var sb strings.Builder

	sb.WriteString("# Task Report\n\n")

	if len(tasks) == 0 {
		sb.WriteString("No tasks.\n")
	} else {
		for _, t := range tasks {
			sb.WriteString(formatTask(t))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n## Tasks by status\n")
	writeCounts(&sb, byStatus)

	sb.WriteString("\n## Tasks by month\n")
	writeCounts(&sb, byMonth)

	return sb.String()
}

func formatTask(t model.Task) string {
	check := "[ ]"
	if t.IsCompleted() {
		check = "[x]"
	}
	line := fmt.Sprintf("%s %s: %s (due %s, %s, priority %d)",
		check, t.ID, t.Name, t.Deadline, t.Status, t.Priority)
	if t.AssignedTo != nil {
		line += fmt.Sprintf(" assigned to %s", *t.AssignedTo)
	}
	if t.Reminder != nil {
		line += fmt.Sprintf(" reminder: %s", *t.Reminder)
	}
	return line
}

func writeCounts(sb *strings.Builder, counts map[string]int) {
	if len(counts) == 0 {
		sb.WriteString("(none)\n")
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(sb, "%s: %d\n", k, counts[k])
	}
}

package ui

import (
	"fmt"

	"github.com/knozaki/trak/internal/model"
)

// TaskItem wraps model.Task to satisfy the list.DefaultItem interface.
type TaskItem struct {
	Task model.Task
}

func (i TaskItem) Title() string {
	check := "[ ]"
	if i.Task.IsCompleted() {
		check = "[x]"
	}
	dueMark := ""
	if i.Task.IsOverdue() {
		dueMark = "! "
	}
	return fmt.Sprintf("%s %s%s (%s)", check, dueMark, i.Task.Name, i.Task.ID)
}

func (i TaskItem) Description() string {
	desc := fmt.Sprintf("due %s · %s · p%d", i.Task.Deadline, i.Task.Status, i.Task.Priority)
	if i.Task.AssignedTo != nil {
		desc += " · @" + *i.Task.AssignedTo
	}
	return desc
}

func (i TaskItem) FilterValue() string {
	return i.Task.Name
}

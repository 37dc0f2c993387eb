package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/knozaki/trak/internal/model"
)

const (
	fieldID = iota
	fieldName
	fieldDeadline
	fieldStatus
	fieldPriority
	fieldCount
)

// taskForm collects the five task fields for add and edit. On add the ID is
// prefilled with a fresh UUID the user may overtype; on edit it is locked,
// since identifiers are immutable.
type taskForm struct {
	id       textinput.Model
	name     textinput.Model
	deadline dateInput
	status   textinput.Model
	priority textinput.Model
	focus    int
	editing  bool
}

func newTaskForm() taskForm {
	id := textinput.New()
	id.Placeholder = "Task ID..."
	id.CharLimit = 64
	id.SetValue(uuid.NewString())

	name := textinput.New()
	name.Placeholder = "Task name..."
	name.CharLimit = 256

	status := textinput.New()
	status.Placeholder = "Status (e.g. Pending)..."
	status.CharLimit = 64

	priority := textinput.New()
	priority.Placeholder = "Priority (lower sorts first)..."
	priority.CharLimit = 6

	return taskForm{
		id:       id,
		name:     name,
		deadline: newDateInput(),
		status:   status,
		priority: priority,
	}
}

// newEditForm returns a form preloaded with the task's current fields.
func newEditForm(t model.Task) taskForm {
	f := newTaskForm()
	f.editing = true
	f.id.SetValue(t.ID)
	f.name.SetValue(t.Name)
	f.deadline.SetValue(t.Deadline)
	f.status.SetValue(t.Status)
	f.priority.SetValue(strconv.Itoa(t.Priority))
	return f
}

func (f *taskForm) Focus() tea.Cmd {
	if f.editing {
		return f.focusField(fieldName)
	}
	return f.focusField(fieldID)
}

func (f *taskForm) focusField(idx int) tea.Cmd {
	f.focus = idx
	f.id.Blur()
	f.name.Blur()
	f.deadline.Blur()
	f.status.Blur()
	f.priority.Blur()
	switch idx {
	case fieldID:
		return f.id.Focus()
	case fieldName:
		return f.name.Focus()
	case fieldDeadline:
		return f.deadline.Focus()
	case fieldStatus:
		return f.status.Focus()
	case fieldPriority:
		return f.priority.Focus()
	}
	return nil
}

func (f *taskForm) next() tea.Cmd {
	idx := f.focus + 1
	if idx >= fieldCount {
		idx = fieldCount - 1
	}
	if f.editing && idx == fieldID {
		idx = fieldName
	}
	return f.focusField(idx)
}

func (f *taskForm) prev() tea.Cmd {
	idx := f.focus - 1
	min := fieldID
	if f.editing {
		min = fieldName
	}
	if idx < min {
		idx = min
	}
	return f.focusField(idx)
}

func (f *taskForm) onLastField() bool {
	return f.focus == fieldPriority
}

// Task assembles and validates the form into a task value.
func (f *taskForm) Task() (model.Task, error) {
	id := strings.TrimSpace(f.id.Value())
	if id == "" {
		return model.Task{}, fmt.Errorf("task ID is required")
	}
	name := strings.TrimSpace(f.name.Value())
	if name == "" {
		return model.Task{}, fmt.Errorf("task name is required")
	}
	deadline, err := f.deadline.Value()
	if err != nil {
		return model.Task{}, err
	}
	prio, err := strconv.Atoi(strings.TrimSpace(f.priority.Value()))
	if err != nil {
		return model.Task{}, fmt.Errorf("priority must be a number")
	}
	return model.Task{
		ID:       id,
		Name:     name,
		Deadline: deadline,
		Status:   strings.TrimSpace(f.status.Value()),
		Priority: prio,
	}, nil
}

func (f taskForm) Update(msg tea.Msg) (taskForm, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "down":
			return f, f.next()
		case "up":
			return f, f.prev()
		case "tab":
			// The deadline row cycles its own segments before moving on.
			if f.focus == fieldDeadline && f.deadline.focus < 2 {
				break
			}
			return f, f.next()
		case "shift+tab":
			if f.focus == fieldDeadline && f.deadline.focus > 0 {
				break
			}
			return f, f.prev()
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldID:
		f.id, cmd = f.id.Update(msg)
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldDeadline:
		f.deadline, cmd = f.deadline.Update(msg)
	case fieldStatus:
		f.status, cmd = f.status.Update(msg)
	case fieldPriority:
		f.priority, cmd = f.priority.Update(msg)
	}
	return f, cmd
}

func (f taskForm) View() string {
	var sb strings.Builder
	if !f.editing {
		sb.WriteString("id:       " + f.id.View() + "\n")
	} else {
		sb.WriteString("id:       " + f.id.Value() + "\n")
	}
	sb.WriteString("name:     " + f.name.View() + "\n")
	sb.WriteString("deadline: " + f.deadline.View() + "\n")
	sb.WriteString("status:   " + f.status.View() + "\n")
	sb.WriteString("priority: " + f.priority.View())
	return sb.String()
}

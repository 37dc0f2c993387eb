package ui

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/knozaki/trak/internal/directory"
	"github.com/knozaki/trak/internal/importer"
	"github.com/knozaki/trak/internal/model"
	"github.com/knozaki/trak/internal/remind"
	"github.com/knozaki/trak/internal/report"
	"github.com/knozaki/trak/internal/store"
)

type appState int

const (
	stateAuth appState = iota
	stateList
	stateForm
	stateConfirm
	statePrompt
	stateResults
	stateAnalytics
)

type promptAction int

const (
	promptSearchName promptAction = iota
	promptSearchDate
	promptFilterStatus
	promptAssignUser
	promptReminderNote
	promptAssignedUser
	promptExportPath
	promptImportPath
	promptYAMLPath
)

var (
	appStyle     = lipgloss.NewStyle().Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	detailStyle  = lipgloss.NewStyle().
			Padding(1, 2).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241"))
)

type extraKeyMap struct {
	Add       key.Binding
	Edit      key.Binding
	Complete  key.Binding
	Delete    key.Binding
	Assign    key.Binding
	Reminder  key.Binding
	Search    key.Binding
	ByDate    key.Binding
	ByStatus  key.Binding
	SortPrio  key.Binding
	SortDue   key.Binding
	Upcoming  key.Binding
	ForUser   key.Binding
	Export    key.Binding
	Import    key.Binding
	ImportY   key.Binding
	Analytics key.Binding
	Report    key.Binding
	Logout    key.Binding
}

func newExtraKeyMap() extraKeyMap {
	return extraKeyMap{
		Add:       key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a/n", "add")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Complete:  key.NewBinding(key.WithKeys("enter", "x"), key.WithHelp("enter/x", "complete")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Assign:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "assign")),
		Reminder:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reminder")),
		Search:    key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "find by name")),
		ByDate:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "find by date")),
		ByStatus:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter status")),
		SortPrio:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "by priority")),
		SortDue:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "by deadline")),
		Upcoming:  key.NewBinding(key.WithKeys("U"), key.WithHelp("U", "upcoming")),
		ForUser:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "user's tasks")),
		Export:    key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export csv")),
		Import:    key.NewBinding(key.WithKeys("I"), key.WithHelp("I", "import csv")),
		ImportY:   key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "import yaml")),
		Analytics: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "analytics")),
		Report:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy report")),
		Logout:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
	}
}

// Model is the top-level BubbleTea model for the trak TUI.
type Model struct {
	state        appState
	list         list.Model
	form         taskForm
	auth         authForm
	prompt       textinput.Model
	promptFor    promptAction
	promptTaskID string
	results      []model.Task
	resultsTitle string
	store        *store.TaskStore
	dir          *directory.UserDirectory
	sched        *remind.Scheduler
	keys         extraKeyMap
	status       string
	err          error
	width        int
	height       int
}

type tasksLoadedMsg []model.Task
type errMsg struct{ error }
type statusMsg string

// ReminderFiredMsg is delivered when a scheduled deadline is reached.
type ReminderFiredMsg struct {
	Task model.Task
}

// NewModel creates a new TUI model.
func NewModel(s *store.TaskStore, d *directory.UserDirectory, sched *remind.Scheduler) Model {
	keys := newExtraKeyMap()

	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "trak"
	l.Styles.Title = titleStyle
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("task", "tasks")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Complete, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{
			keys.Add, keys.Edit, keys.Complete, keys.Delete,
			keys.Assign, keys.Reminder, keys.Search, keys.ByDate,
			keys.ByStatus, keys.SortPrio, keys.SortDue, keys.Upcoming,
			keys.ForUser, keys.Export, keys.Import, keys.ImportY,
			keys.Analytics, keys.Report, keys.Logout,
		}
	}

	prompt := textinput.New()
	prompt.CharLimit = 256

	auth := newAuthForm()
	auth.Focus()

	return Model{
		state:  stateAuth,
		list:   l,
		auth:   auth,
		prompt: prompt,
		store:  s,
		dir:    d,
		sched:  sched,
		keys:   keys,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadTasks)
}

func (m Model) loadTasks() tea.Msg {
	return tasksLoadedMsg(m.store.List())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		contentWidth := msg.Width - h
		leftWidth := contentWidth * 60 / 100
		m.list.SetSize(leftWidth, msg.Height-v)
		return m, nil

	case tasksLoadedMsg:
		items := make([]list.Item, len(msg))
		for i, t := range msg {
			items[i] = TaskItem{Task: t}
		}
		m.list.SetItems(items)
		m.err = nil
		return m, nil

	case statusMsg:
		m.status = string(msg)
		m.err = nil
		return m, nil

	case errMsg:
		m.err = msg.error
		return m, nil

	case ReminderFiredMsg:
		m.status = fmt.Sprintf("Reminder: %s is due (%s)", msg.Task.Name, msg.Task.Deadline)
		return m, nil
	}

	switch m.state {
	case stateAuth:
		return m.updateAuth(msg)
	case stateList:
		return m.updateList(msg)
	case stateForm:
		return m.updateForm(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	case statePrompt:
		return m.updatePrompt(msg)
	case stateResults:
		return m.updateResults(msg)
	case stateAnalytics:
		return m.updateAnalytics(msg)
	}

	return m, nil
}

func (m Model) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			username, password := m.auth.Values()
			if username == "" {
				m.err = fmt.Errorf("username is required")
				return m, nil
			}
			if m.auth.registering {
				if !m.dir.Register(username, password) {
					m.err = fmt.Errorf("user %q already exists", username)
					return m, nil
				}
				m.auth.toggleMode()
				m.status = "User registered. Log in to continue."
				return m, m.auth.Reset()
			}
			if !m.dir.Login(username, password) {
				m.err = fmt.Errorf("invalid username or password")
				return m, nil
			}
			m.state = stateList
			m.status = "Logged in as " + username
			m.err = nil
			return m, m.loadTasks
		case "ctrl+n":
			m.auth.toggleMode()
			m.err = nil
			return m, nil
		case "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.auth, cmd = m.auth.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch keyMsg.String() {
		case "a", "n":
			m.state = stateForm
			m.form = newTaskForm()
			return m, m.form.Focus()
		case "e":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				m.state = stateForm
				m.form = newEditForm(item.Task)
				return m, m.form.Focus()
			}
		case "enter", "x":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				if !m.store.MarkCompleted(item.Task.ID) {
					m.err = fmt.Errorf("task %q not found", item.Task.ID)
					return m, nil
				}
				m.status = "Task marked as completed."
				return m, m.loadTasks
			}
		case "d":
			if m.list.SelectedItem() != nil {
				m.state = stateConfirm
				return m, nil
			}
		case "u":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				return m.openPrompt(promptAssignUser, "Assign to username", item.Task.ID)
			}
		case "r":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				return m.openPrompt(promptReminderNote, "Reminder note", item.Task.ID)
			}
		case "N":
			return m.openPrompt(promptSearchName, "Task name to search", "")
		case "D":
			return m.openPrompt(promptSearchDate, "Deadline to search (yyyy-MM-dd)", "")
		case "f":
			return m.openPrompt(promptFilterStatus, "Status to filter by", "")
		case "g":
			return m.openPrompt(promptAssignedUser, "Username to view tasks for", "")
		case "E":
			return m.openPrompt(promptExportPath, "Export CSV to file", "")
		case "I":
			return m.openPrompt(promptImportPath, "Import CSV from file", "")
		case "Y":
			return m.openPrompt(promptYAMLPath, "Import YAML from file", "")
		case "p":
			m.results = m.store.SortedByPriority()
			m.resultsTitle = "Tasks by priority"
			m.state = stateResults
			return m, nil
		case "o":
			m.results = m.store.SortedByDeadline()
			m.resultsTitle = "Tasks by deadline"
			m.state = stateResults
			return m, nil
		case "U":
			m.results = m.store.Upcoming(time.Now())
			m.resultsTitle = "Upcoming tasks"
			m.state = stateResults
			return m, nil
		case "A":
			m.state = stateAnalytics
			return m, nil
		case "c":
			text := report.Generate(m.store.List(), m.store.CountByStatus(), m.store.CountByMonth())
			if err := clipboard.WriteAll(text); err != nil {
				m.err = fmt.Errorf("copy report: %w", err)
				return m, nil
			}
			m.status = "Report copied to clipboard."
			return m, nil
		case "L":
			m.dir.Logout()
			m.state = stateAuth
			m.status = "Logged out."
			return m, m.auth.Reset()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) openPrompt(action promptAction, placeholder, taskID string) (tea.Model, tea.Cmd) {
	m.state = statePrompt
	m.promptFor = action
	m.promptTaskID = taskID
	m.prompt.Placeholder = placeholder + "..."
	m.prompt.Reset()
	return m, m.prompt.Focus()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if !m.form.onLastField() {
				return m, m.form.next()
			}
			t, err := m.form.Task()
			if err != nil {
				m.err = err
				return m, nil
			}
			if m.form.editing {
				if !m.store.Edit(t.ID, t.Name, t.Deadline, t.Status, t.Priority) {
					m.err = fmt.Errorf("task %q not found", t.ID)
					return m, nil
				}
				m.status = "Task updated."
			} else {
				m.store.Add(t)
				m.status = "Task added."
			}
			m.state = stateList
			return m, m.loadTasks
		case "esc":
			m.state = stateList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				if m.store.Remove(item.Task.ID) {
					m.sched.Cancel(item.Task.ID)
					m.status = "Task removed."
				} else {
					m.err = fmt.Errorf("task %q not found", item.Task.ID)
				}
			}
			m.state = stateList
			return m, m.loadTasks
		case "n", "esc":
			m.state = stateList
			return m, nil
		}
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			value := strings.TrimSpace(m.prompt.Value())
			m.state = stateList
			return m.runPromptAction(value)
		case "esc":
			m.state = stateList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) runPromptAction(value string) (tea.Model, tea.Cmd) {
	switch m.promptFor {
	case promptSearchName:
		m.results = m.store.FindAllByName(value)
		m.resultsTitle = fmt.Sprintf("Tasks named %q", value)
		m.state = stateResults
	case promptSearchDate:
		m.results = m.store.FindAllByDeadline(value)
		m.resultsTitle = "Tasks due " + value
		m.state = stateResults
	case promptFilterStatus:
		m.results = m.store.FilterByStatus(value)
		m.resultsTitle = fmt.Sprintf("Tasks with status %q", value)
		m.state = stateResults
	case promptAssignedUser:
		m.results = m.store.AssignedTo(value)
		m.resultsTitle = "Tasks assigned to " + value
		m.state = stateResults
	case promptAssignUser:
		if value == "" {
			m.err = fmt.Errorf("username is required")
			return m, nil
		}
		if !m.store.Assign(m.promptTaskID, value) {
			m.err = fmt.Errorf("task %q not found", m.promptTaskID)
			return m, nil
		}
		m.status = "Task assigned to " + value + "."
		if !m.dir.Exists(value) {
			m.status += " (no such registered user)"
		}
		return m, m.loadTasks
	case promptReminderNote:
		if !m.store.SetReminder(m.promptTaskID, value) {
			m.err = fmt.Errorf("task %q not found", m.promptTaskID)
			return m, nil
		}
		m.status = "Reminder set."
		if t, ok := m.store.Get(m.promptTaskID); ok {
			if !m.sched.Schedule(t) {
				m.status = "Reminder note saved; deadline is past or unreadable, nothing scheduled."
			}
		}
		return m, m.loadTasks
	case promptExportPath:
		if err := m.store.ExportFile(value); err != nil {
			m.err = err
			return m, nil
		}
		m.status = "Tasks exported to " + value + "."
	case promptImportPath:
		accepted, skipped, err := m.store.ImportFile(value)
		if err != nil {
			m.err = err
			return m, m.loadTasks
		}
		m.status = fmt.Sprintf("Imported %d tasks (%d lines skipped).", accepted, skipped)
		return m, m.loadTasks
	case promptYAMLPath:
		return m, m.importYAML(value)
	}
	return m, nil
}

func (m Model) importYAML(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := readFile(path)
		if err != nil {
			return errMsg{err}
		}
		count, err := importer.Import(m.store, data)
		if err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("Imported %d tasks from YAML.", count))
	}
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func (m Model) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q", "enter":
			m.state = stateList
			return m, m.loadTasks
		}
	}
	return m, nil
}

func (m Model) updateAnalytics(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q", "enter":
			m.state = stateList
			return m, nil
		}
	}
	return m, nil
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return ""
	}
	t := item.Task

	var sb strings.Builder
	sb.WriteString(t.Name + "\n\n")
	sb.WriteString("id:       " + t.ID + "\n")
	sb.WriteString("deadline: " + t.Deadline)
	if t.IsOverdue() {
		sb.WriteString(" " + errorStyle.Render("(overdue)"))
	}
	sb.WriteString("\n")
	sb.WriteString("status:   " + t.Status + "\n")
	sb.WriteString(fmt.Sprintf("priority: %d\n", t.Priority))
	if t.AssignedTo != nil {
		sb.WriteString("assignee: " + *t.AssignedTo + "\n")
	}
	if t.Reminder != nil {
		sb.WriteString("reminder: " + *t.Reminder + "\n")
	}
	if user, ok := m.dir.Current(); ok {
		sb.WriteString("\n" + statusStyle.Render("session: "+user.Username))
	}
	return sb.String()
}

func renderCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return statusStyle.Render("(none)")
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var lines []string
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%-16s %d", k, counts[k]))
	}
	return strings.Join(lines, "\n")
}

func (m Model) statusLine() string {
	if m.err != nil {
		return "\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.status != "" {
		return "\n" + okStyle.Render(m.status) + "\n"
	}
	return ""
}

func (m Model) View() string {
	switch m.state {
	case stateAuth:
		header := "Login"
		hint := "enter: login • ctrl+n: register instead • esc: quit"
		if m.auth.registering {
			header = "Register"
			hint = "enter: register • ctrl+n: login instead • esc: quit"
		}
		return appStyle.Render(
			titleStyle.Render(header) + "\n\n" +
				m.auth.View() + "\n\n" +
				statusStyle.Render(hint) +
				m.statusLine(),
		)
	case stateForm:
		header := "New Task"
		if m.form.editing {
			header = "Edit Task"
		}
		return appStyle.Render(
			titleStyle.Render(header) + "\n\n" +
				m.form.View() + "\n\n" +
				statusStyle.Render("enter: next/save • up/down: move • esc: cancel") +
				m.statusLine(),
		)
	case stateConfirm:
		item, _ := m.list.SelectedItem().(TaskItem)
		return appStyle.Render(
			confirmStyle.Render("Delete Task?") + "\n\n" +
				"  " + item.Task.Name + "\n\n" +
				statusStyle.Render("y: delete • n/esc: cancel") +
				m.statusLine(),
		)
	case statePrompt:
		return appStyle.Render(
			titleStyle.Render(strings.TrimSuffix(m.prompt.Placeholder, "...")) + "\n\n" +
				m.prompt.View() + "\n\n" +
				statusStyle.Render("enter: confirm • esc: cancel") +
				m.statusLine(),
		)
	case stateResults:
		var lines []string
		for _, t := range m.results {
			lines = append(lines, TaskItem{Task: t}.Title()+"\n    "+statusStyle.Render(TaskItem{Task: t}.Description()))
		}
		body := statusStyle.Render("No matching tasks.")
		if len(lines) > 0 {
			body = strings.Join(lines, "\n")
		}
		return appStyle.Render(
			titleStyle.Render(m.resultsTitle) + "\n\n" +
				body + "\n\n" +
				statusStyle.Render("esc: back") +
				m.statusLine(),
		)
	case stateAnalytics:
		return appStyle.Render(
			titleStyle.Render("Analytics") + "\n\n" +
				"By status\n" + renderCounts(m.store.CountByStatus()) + "\n\n" +
				"By month\n" + renderCounts(m.store.CountByMonth()) + "\n\n" +
				statusStyle.Render("esc: back") +
				m.statusLine(),
		)
	default:
		h, v := appStyle.GetFrameSize()
		contentWidth := m.width - h
		contentHeight := m.height - v
		leftWidth := contentWidth * 60 / 100
		rightWidth := contentWidth - leftWidth

		leftPane := m.list.View()
		rightPane := detailStyle.
			Width(rightWidth).
			Height(contentHeight).
			Render(m.renderDetail())
		content := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
		return appStyle.Render(content + m.statusLine())
	}
}

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/knozaki/trak/internal/directory"
	"github.com/knozaki/trak/internal/model"
	"github.com/knozaki/trak/internal/remind"
	"github.com/knozaki/trak/internal/store"
	"github.com/knozaki/trak/internal/ui"
)

func main() {
	tasks := store.NewTaskStore()
	users := directory.NewUserDirectory()

	var p *tea.Program
	sched := remind.NewScheduler(func(t model.Task) {
		if p != nil {
			p.Send(ui.ReminderFiredMsg{Task: t})
		}
	})
	defer sched.Stop()

	p = tea.NewProgram(ui.NewModel(tasks, users, sched), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

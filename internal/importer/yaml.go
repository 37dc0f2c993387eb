package importer

import (
	"fmt"

	"github.com/knozaki/trak/internal/model"
	"github.com/knozaki/trak/internal/store"
	"gopkg.in/yaml.v3"
)

// YAMLTask represents a single task in the YAML input.
type YAMLTask struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Deadline   string `yaml:"deadline,omitempty"`
	Status     string `yaml:"status,omitempty"`
	Priority   int    `yaml:"priority,omitempty"`
	AssignedTo string `yaml:"assigned_to,omitempty"`
	Reminder   string `yaml:"reminder,omitempty"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// Import parses a YAML string and creates tasks in the store.
// Returns the number of tasks created. Tasks created before a failing
// entry remain in the store.
func Import(s *store.TaskStore, yamlStr string) (int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal([]byte(yamlStr), &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Tasks) == 0 {
		return 0, fmt.Errorf("no tasks found in YAML")
	}

	count := 0
	for _, yt := range input.Tasks {
		if err := importTask(s, yt); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func importTask(s *store.TaskStore, yt YAMLTask) error {
	if yt.ID == "" {
		return fmt.Errorf("task id is required")
	}
	if yt.Name == "" {
		return fmt.Errorf("task name is required for %q", yt.ID)
	}

	t := model.Task{
		ID:       yt.ID,
		Name:     yt.Name,
		Deadline: yt.Deadline,
		Status:   yt.Status,
		Priority: yt.Priority,
	}
	s.Add(t)

	if yt.AssignedTo != "" {
		s.Assign(yt.ID, yt.AssignedTo)
	}
	if yt.Reminder != "" {
		s.SetReminder(yt.ID, yt.Reminder)
	}
	return nil
}

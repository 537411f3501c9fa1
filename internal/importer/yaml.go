package importer

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/acampos/foco/internal/model"
	"github.com/acampos/foco/internal/repeat"
	"github.com/acampos/foco/internal/store"
)

// YAMLTask represents a single task in the YAML input.
type YAMLTask struct {
	Text         string              `yaml:"text"`
	Description  string              `yaml:"description,omitempty"`
	Date         string              `yaml:"date,omitempty"`
	Time         string              `yaml:"time,omitempty"`
	Color        string              `yaml:"color,omitempty"`
	Category     string              `yaml:"category,omitempty"`
	Repeat       string              `yaml:"repeat,omitempty"`
	CustomRepeat *model.CustomRepeat `yaml:"custom_repeat,omitempty"`
	Subtasks     []string            `yaml:"subtasks,omitempty"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// Import parses a YAML document and creates its tasks in the store.
// Categories are created on demand by name; category creation is
// synchronous, so the new id can be referenced by the task immediately.
// Returns the number of tasks created.
func Import(ctx context.Context, s *store.Store, yamlStr string) (int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal([]byte(yamlStr), &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}
	if len(input.Tasks) == 0 {
		return 0, errors.New("no tasks found in YAML")
	}

	categoryIDs := make(map[string]string)
	for _, c := range s.Categories() {
		categoryIDs[c.Name] = c.ID
	}

	count := 0
	for _, yt := range input.Tasks {
		if err := importTask(ctx, s, yt, categoryIDs); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func importTask(ctx context.Context, s *store.Store, yt YAMLTask, categoryIDs map[string]string) error {
	if yt.Text == "" {
		return errors.New("task text is required")
	}

	fields := model.Task{
		Text:        yt.Text,
		Description: yt.Description,
		Date:        yt.Date,
		Time:        yt.Time,
		Color:       model.Color(yt.Color),
		Repeat:      model.Repeat(yt.Repeat),
	}
	if !fields.Color.Valid() {
		fields.Color = model.ColorBlue
	}
	if yt.CustomRepeat != nil {
		rule := repeat.Confirm(*yt.CustomRepeat)
		fields.CustomRepeat = &rule
		fields.Repeat = model.RepeatCustom
	}

	if yt.Category != "" {
		id, ok := categoryIDs[yt.Category]
		if !ok {
			cat, err := s.AddCategory(ctx, yt.Category, nextCategoryColor(len(categoryIDs)))
			if err != nil {
				return fmt.Errorf("create category %q: %w", yt.Category, err)
			}
			id = cat.ID
			categoryIDs[yt.Category] = id
		}
		fields.CategoryID = id
	}

	created, err := s.AddTask(ctx, fields)
	if err != nil {
		return fmt.Errorf("add task %q: %w", yt.Text, err)
	}

	for _, sub := range yt.Subtasks {
		if err := s.AddSubtask(ctx, created.ID, sub); err != nil {
			return fmt.Errorf("add subtask for %q: %w", yt.Text, err)
		}
	}
	return nil
}

func nextCategoryColor(existingCount int) model.Color {
	return model.Colors[existingCount%len(model.Colors)]
}

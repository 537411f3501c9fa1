package importer

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acampos/foco/internal/backend"
	"github.com/acampos/foco/internal/model"
	"github.com/acampos/foco/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	client, err := backend.NewFile(filepath.Join(t.TempDir(), "foco.json"))
	require.NoError(t, err)
	s := store.New(client, log.New(io.Discard))
	s.SetSession(context.Background(), &backend.Session{UserID: "local"})
	return s
}

func TestImport(t *testing.T) {
	s := newTestStore(t)

	yamlStr := `
tasks:
  - text: Buy milk
    date: "2024-09-05"
    time: "08:30"
    category: Errands
    subtasks:
      - oat milk
      - regular milk
  - text: Water plants
    category: Errands
    repeat: weekly
  - text: Review budget
    description: quarterly numbers
    custom_repeat:
      every: 0
      unit: month
      end:
        type: after
        count: 4
`
	n, err := Import(context.Background(), s, yamlStr)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	tasks := s.Tasks()
	require.Len(t, tasks, 3)

	// Newest first: the last imported task is at the top.
	budget := tasks[0]
	assert.Equal(t, "Review budget", budget.Text)
	assert.Equal(t, model.RepeatCustom, budget.Repeat)
	require.NotNil(t, budget.CustomRepeat)
	assert.Equal(t, 1, budget.CustomRepeat.Every, "invalid interval clamped")
	assert.Equal(t, 4, budget.CustomRepeat.End.Count)

	milk := tasks[2]
	assert.Equal(t, "Buy milk", milk.Text)
	assert.Equal(t, "2024-09-05", milk.Date)
	require.Len(t, milk.Subtasks, 2)

	// Both tasks share the one on-demand category.
	cats := s.Categories()
	require.Len(t, cats, 1)
	assert.Equal(t, "Errands", cats[0].Name)
	assert.Equal(t, cats[0].ID, milk.CategoryID)
	assert.Equal(t, cats[0].ID, tasks[1].CategoryID)
}

func TestImport_Empty(t *testing.T) {
	s := newTestStore(t)

	_, err := Import(context.Background(), s, "tasks: []")
	assert.Error(t, err)

	_, err = Import(context.Background(), s, ":::not yaml")
	assert.Error(t, err)
}

func TestImport_MissingText(t *testing.T) {
	s := newTestStore(t)

	n, err := Import(context.Background(), s, "tasks:\n  - description: no text\n")
	assert.Error(t, err)
	assert.Zero(t, n)
}

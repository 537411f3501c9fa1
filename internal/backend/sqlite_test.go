package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acampos/foco/internal/model"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_TaskRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	in := model.Task{
		Text:        "Water plants",
		Color:       model.ColorGreen,
		Date:        "2024-09-05",
		Time:        "08:30",
		Repeat:      model.RepeatCustom,
		Description: "balcony first",
		CustomRepeat: &model.CustomRepeat{
			Every:    2,
			Unit:     model.UnitWeek,
			Weekdays: []int{1, 4},
			End:      model.RepeatEnd{Type: model.EndAfter, Count: 10},
		},
		Subtasks: []model.Subtask{
			{ID: "s1", Text: "balcony"},
			{ID: "s2", Text: "kitchen", Completed: true},
		},
	}

	created, err := s.InsertTask(ctx, "u1", in)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	tasks, err := s.FetchTasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	got := tasks[0]
	assert.Equal(t, in.Text, got.Text)
	assert.Equal(t, in.Date, got.Date)
	assert.Equal(t, in.Time, got.Time)
	assert.Equal(t, in.Repeat, got.Repeat)
	assert.Equal(t, in.Description, got.Description)
	require.NotNil(t, got.CustomRepeat)
	assert.Equal(t, *in.CustomRepeat, *got.CustomRepeat)
	assert.Equal(t, in.Subtasks, got.Subtasks)
}

func TestSQLite_FetchOrder(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		_, err := s.InsertTask(ctx, "u1", model.Task{Text: text})
		require.NoError(t, err)
	}

	tasks, err := s.FetchTasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "third", tasks[0].Text, "tasks come back newest first")
	assert.Equal(t, "first", tasks[2].Text)

	for _, name := range []string{"alpha", "beta"} {
		_, err := s.InsertCategory(ctx, "u1", name, model.ColorBlue)
		require.NoError(t, err)
	}
	cats, err := s.FetchCategories(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "alpha", cats[0].Name, "categories come back oldest first")
}

func TestSQLite_UserScoping(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.InsertTask(ctx, "u1", model.Task{Text: "mine"})
	require.NoError(t, err)
	_, err = s.InsertTask(ctx, "u2", model.Task{Text: "theirs"})
	require.NoError(t, err)

	tasks, err := s.FetchTasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "mine", tasks[0].Text)
}

func TestSQLite_UpdateTask(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	created, err := s.InsertTask(ctx, "u1", model.Task{Text: "draft"})
	require.NoError(t, err)

	created.Text = "final"
	created.Completed = true
	created.Date = "2024-10-01"
	require.NoError(t, s.UpdateTask(ctx, "u1", created))

	tasks, err := s.FetchTasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "final", tasks[0].Text)
	assert.True(t, tasks[0].Completed)
	assert.Equal(t, "2024-10-01", tasks[0].Date)
}

func TestSQLite_UpdateMissingTask(t *testing.T) {
	s := newTestSQLite(t)

	err := s.UpdateTask(context.Background(), "u1", model.Task{ID: "nope", Text: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_DeleteCategoryDetachesTasks(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	cat, err := s.InsertCategory(ctx, "u1", "Errands", model.ColorOrange)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := s.InsertTask(ctx, "u1", model.Task{Text: "task", CategoryID: cat.ID})
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteCategory(ctx, "u1", cat.ID))

	cats, err := s.FetchCategories(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cats)

	tasks, err := s.FetchTasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Empty(t, task.CategoryID)
	}
}

func TestSQLite_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	ctx := context.Background()

	s, err := NewSQLite(path)
	require.NoError(t, err)
	_, err = s.InsertTask(ctx, "u1", model.Task{Text: "persisted"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := NewSQLite(path)
	require.NoError(t, err)
	defer s2.Close()

	tasks, err := s2.FetchTasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "persisted", tasks[0].Text)
}

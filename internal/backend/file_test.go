package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acampos/foco/internal/model"
)

func newTestFile(t *testing.T) (*File, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "foco.json")
	f, err := NewFile(path)
	require.NoError(t, err)
	return f, path
}

func TestFile_RewritesBlobOnEveryChange(t *testing.T) {
	f, path := newTestFile(t)
	ctx := context.Background()

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no file until the first write")

	created, err := f.InsertTask(ctx, "ignored", model.Task{Text: "Buy milk"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Buy milk")
}

func TestFile_LoadAtStartup(t *testing.T) {
	f, path := newTestFile(t)
	ctx := context.Background()

	_, err := f.InsertTask(ctx, "", model.Task{Text: "older"})
	require.NoError(t, err)
	_, err = f.InsertTask(ctx, "", model.Task{Text: "newer"})
	require.NoError(t, err)
	_, err = f.InsertCategory(ctx, "", "Home", model.ColorTeal)
	require.NoError(t, err)

	reopened, err := NewFile(path)
	require.NoError(t, err)

	tasks, err := reopened.FetchTasks(ctx, "")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "newer", tasks[0].Text, "newest first")

	cats, err := reopened.FetchCategories(ctx, "")
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Home", cats[0].Name)
}

func TestFile_UpdateAndDelete(t *testing.T) {
	f, _ := newTestFile(t)
	ctx := context.Background()

	created, err := f.InsertTask(ctx, "", model.Task{Text: "draft"})
	require.NoError(t, err)

	created.Text = "final"
	created.Subtasks = []model.Subtask{{ID: "s1", Text: "step one"}}
	require.NoError(t, f.UpdateTask(ctx, "", created))

	tasks, err := f.FetchTasks(ctx, "")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "final", tasks[0].Text)
	require.Len(t, tasks[0].Subtasks, 1)

	require.NoError(t, f.DeleteTask(ctx, "", created.ID))
	tasks, err = f.FetchTasks(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestFile_UpdateMissingTask(t *testing.T) {
	f, _ := newTestFile(t)

	err := f.UpdateTask(context.Background(), "", model.Task{ID: "nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFile_DeleteCategoryDetachesTasks(t *testing.T) {
	f, _ := newTestFile(t)
	ctx := context.Background()

	cat, err := f.InsertCategory(ctx, "", "Errands", model.ColorOrange)
	require.NoError(t, err)
	created, err := f.InsertTask(ctx, "", model.Task{Text: "Buy milk", CategoryID: cat.ID})
	require.NoError(t, err)

	require.NoError(t, f.DeleteCategory(ctx, "", cat.ID))

	cats, err := f.FetchCategories(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, cats)

	tasks, err := f.FetchTasks(ctx, "")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)
	assert.Empty(t, tasks[0].CategoryID)
}

func TestFile_CorruptBlobFailsToLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foco.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFile(path)
	assert.Error(t, err)
}

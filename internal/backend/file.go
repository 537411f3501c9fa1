package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/acampos/foco/internal/model"
)

// File is the simple-mode Client: the entire collection lives in one JSON
// blob, loaded at startup and rewritten on every change. There is no
// migration and no schema versioning; the file is single-user, so the
// userID argument is accepted for interface compatibility and otherwise
// ignored.
type File struct {
	path string

	mu   sync.Mutex
	data fileData
}

type fileData struct {
	Tasks      []model.Task     `json:"tasks"`
	Categories []model.Category `json:"categories"`
}

// NewFile loads (or creates) the JSON data file. An empty path selects
// foco.json next to the default database location.
func NewFile(path string) (*File, error) {
	if path == "" {
		dir, err := defaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("determine data path: %w", err)
		}
		path = filepath.Join(filepath.Dir(dir), "foco.json")
	}

	f := &File{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("read data file: %w", err)
	}
	if err := json.Unmarshal(raw, &f.data); err != nil {
		return nil, fmt.Errorf("parse data file: %w", err)
	}
	return f, nil
}

// save rewrites the whole blob. Callers hold f.mu.
func (f *File) save() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

// FetchCategories implements Client.
func (f *File) FetchCategories(_ context.Context, _ string) ([]model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.Category, len(f.data.Categories))
	copy(out, f.data.Categories)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// FetchTasks implements Client.
func (f *File) FetchTasks(_ context.Context, _ string) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.Task, len(f.data.Tasks))
	for i, t := range f.data.Tasks {
		out[i] = t.Clone()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// InsertTask implements Client.
func (f *File) InsertTask(_ context.Context, _ string, t model.Task) (model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	f.data.Tasks = append(f.data.Tasks, t.Clone())
	if err := f.save(); err != nil {
		f.data.Tasks = f.data.Tasks[:len(f.data.Tasks)-1]
		return model.Task{}, err
	}
	return t, nil
}

// UpdateTask implements Client.
func (f *File) UpdateTask(_ context.Context, _ string, t model.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.data.Tasks {
		if f.data.Tasks[i].ID == t.ID {
			prev := f.data.Tasks[i]
			f.data.Tasks[i] = t.Clone()
			if err := f.save(); err != nil {
				f.data.Tasks[i] = prev
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("update task %s: %w", t.ID, ErrNotFound)
}

// DeleteTask implements Client.
func (f *File) DeleteTask(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.data.Tasks {
		if f.data.Tasks[i].ID == id {
			f.data.Tasks = append(f.data.Tasks[:i], f.data.Tasks[i+1:]...)
			return f.save()
		}
	}
	return nil
}

// InsertCategory implements Client.
func (f *File) InsertCategory(_ context.Context, _ string, name string, color model.Color) (model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := model.Category{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
	}
	f.data.Categories = append(f.data.Categories, c)
	if err := f.save(); err != nil {
		f.data.Categories = f.data.Categories[:len(f.data.Categories)-1]
		return model.Category{}, err
	}
	return c, nil
}

// DeleteCategory implements Client.
func (f *File) DeleteCategory(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := -1
	for i := range f.data.Categories {
		if f.data.Categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("delete category %s: %w", id, ErrNotFound)
	}
	f.data.Categories = append(f.data.Categories[:idx], f.data.Categories[idx+1:]...)
	for i := range f.data.Tasks {
		if f.data.Tasks[i].CategoryID == id {
			f.data.Tasks[i].CategoryID = ""
		}
	}
	return f.save()
}

// Close implements Client. The file is rewritten on every change, so there
// is nothing to flush.
func (f *File) Close() error {
	return nil
}

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/acampos/foco/internal/model"
)

// AddTask creates a task from the given fields. This is the one mutation
// without an optimistic local phase: the id is not known until the backend
// assigns it, so the confirmed row is prepended only on success.
func (s *Store) AddTask(ctx context.Context, fields model.Task) (model.Task, error) {
	if strings.TrimSpace(fields.Text) == "" {
		return model.Task{}, ErrEmptyText
	}
	userID, err := s.userID()
	if err != nil {
		return model.Task{}, err
	}

	created, err := s.client.InsertTask(ctx, userID, fields)
	if err != nil {
		s.logger.Error("backend request failed", "op", "add task", "err", err)
		return model.Task{}, fmt.Errorf("add task: %w", err)
	}

	s.mu.Lock()
	s.tasks = append([]model.Task{created.Clone()}, s.tasks...)
	s.mu.Unlock()
	return created, nil
}

// ToggleTask flips a task's completed flag locally, then confirms with the
// backend. The rollback baseline is the flag's value at call time; two
// toggles in flight can race on which rollback wins, an accepted limitation.
func (s *Store) ToggleTask(ctx context.Context, id string) error {
	userID, err := s.userID()
	if err != nil {
		return err
	}

	var prev bool
	var updated model.Task
	return s.optimistic(ctx, "toggle task", userID,
		func() error {
			i := s.indexOf(id)
			if i < 0 {
				return ErrNotFound
			}
			prev = s.tasks[i].Completed
			s.tasks[i].Completed = !prev
			updated = s.tasks[i].Clone()
			return nil
		},
		func(ctx context.Context, userID string) error {
			return s.client.UpdateTask(ctx, userID, updated)
		},
		func() {
			if i := s.indexOf(id); i >= 0 {
				s.tasks[i].Completed = prev
			}
		})
}

// DeleteTask removes a task locally and fires the delete request. Once the
// user commits, delete is best effort: a backend failure is logged and
// returned, but the task is not restored. Deleting the selected task clears
// the selection before the request is issued.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	userID, err := s.userID()
	if err != nil {
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	}
	if s.selectedID == id {
		s.selectedID = ""
	}
	s.mu.Unlock()

	if err := s.client.DeleteTask(ctx, userID, id); err != nil {
		s.logger.Error("backend request failed, not restored", "op", "delete task", "err", err)
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// UpdateTask replaces a task with the given complete value. Every edit goes
// through here as a full-entity replace; there are no partial patches. The
// rollback snapshot is the entire prior list, restored as a unit on failure.
func (s *Store) UpdateTask(ctx context.Context, updated model.Task) error {
	userID, err := s.userID()
	if err != nil {
		return err
	}

	var snapshot []model.Task
	return s.optimistic(ctx, "update task", userID,
		func() error {
			i := s.indexOf(updated.ID)
			if i < 0 {
				return ErrNotFound
			}
			snapshot = make([]model.Task, len(s.tasks))
			for j, t := range s.tasks {
				snapshot[j] = t.Clone()
			}
			s.tasks[i] = updated.Clone()
			return nil
		},
		func(ctx context.Context, userID string) error {
			return s.client.UpdateTask(ctx, userID, updated)
		},
		func() {
			s.tasks = snapshot
		})
}

// ToggleSubtask flips one subtask inside its parent and persists the whole
// task. Subtasks have no persistence path of their own.
func (s *Store) ToggleSubtask(ctx context.Context, taskID, subtaskID string) error {
	t, ok := s.Task(taskID)
	if !ok {
		return ErrNotFound
	}
	return s.UpdateTask(ctx, t.WithSubtaskToggled(subtaskID))
}

// AddSubtask appends a new subtask to the parent task and persists the
// whole task. The subtask id is generated client-side.
func (s *Store) AddSubtask(ctx context.Context, taskID, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	t, ok := s.Task(taskID)
	if !ok {
		return ErrNotFound
	}
	sub := model.Subtask{ID: uuid.NewString(), Text: text}
	return s.UpdateTask(ctx, t.WithSubtaskAdded(sub))
}

// DeleteSubtask removes a subtask from its parent and persists the whole
// task.
func (s *Store) DeleteSubtask(ctx context.Context, taskID, subtaskID string) error {
	t, ok := s.Task(taskID)
	if !ok {
		return ErrNotFound
	}
	return s.UpdateTask(ctx, t.WithSubtaskRemoved(subtaskID))
}

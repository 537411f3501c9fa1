package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/acampos/foco/internal/model"
)

// AddCategory creates a category. Unlike task mutations this is not
// optimistic: the backend confirms first, and the confirmed entity is
// returned synchronously so the caller can reference its id immediately
// (for example a task being composed). An empty name is rejected.
func (s *Store) AddCategory(ctx context.Context, name string, color model.Color) (model.Category, error) {
	if strings.TrimSpace(name) == "" {
		return model.Category{}, ErrEmptyText
	}
	userID, err := s.userID()
	if err != nil {
		return model.Category{}, err
	}

	created, err := s.client.InsertCategory(ctx, userID, name, color)
	if err != nil {
		s.logger.Error("backend request failed", "op", "add category", "err", err)
		return model.Category{}, fmt.Errorf("add category: %w", err)
	}

	s.mu.Lock()
	s.categories = append(s.categories, created)
	s.mu.Unlock()
	return created, nil
}

// DeleteCategory removes a category, backend first. On success the category
// is removed locally and every task referencing it has its category cleared;
// tasks themselves are never deleted. On failure local state is untouched
// and the category stays referenced.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	userID, err := s.userID()
	if err != nil {
		return err
	}

	if err := s.client.DeleteCategory(ctx, userID, id); err != nil {
		s.logger.Error("backend request failed", "op", "delete category", "err", err)
		return fmt.Errorf("delete category: %w", err)
	}

	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			break
		}
	}
	for i := range s.tasks {
		if s.tasks[i].CategoryID == id {
			s.tasks[i].CategoryID = ""
		}
	}
	s.mu.Unlock()
	return nil
}

// Category looks up a category by id.
func (s *Store) Category(id string) (model.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// Package store owns the in-memory task and category collections for the
// session and keeps them synchronized with a backend client. Task mutations
// are optimistic: the local change lands before the backend confirms, and a
// failed request rolls the change back. The UI therefore never waits on the
// backend, and a failure is observable as the state reverting plus the
// returned error.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/acampos/foco/internal/backend"
	"github.com/acampos/foco/internal/model"
)

var (
	// ErrEmptyText rejects tasks, subtasks and categories whose text trims
	// to nothing.
	ErrEmptyText = errors.New("store: empty text")
	// ErrNotFound means the id is not in the local collection.
	ErrNotFound = errors.New("store: not found")
	// ErrNoSession means no user is signed in.
	ErrNoSession = errors.New("store: no session")
)

// State is the session-level store state. Failures never park the store in
// an error state; they are reported per operation and the state stays ready.
type State int

const (
	StateUnauthenticated State = iota
	StateLoading
	StateReady
)

// Store holds the authoritative local task list and category list. Tasks are
// kept in display order, newest first. The backend is the durable source of
// truth; local state is a session cache mutated optimistically.
type Store struct {
	client backend.Client
	logger *log.Logger

	mu         sync.Mutex
	state      State
	session    *backend.Session
	tasks      []model.Task
	categories []model.Category
	selectedID string
}

// New creates a store over the given backend client.
func New(client backend.Client, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{client: client, logger: logger}
}

// Watch subscribes the store to session changes. A new session triggers a
// full reload; losing the session clears everything so no stale data is
// shown to a different (or no) user.
func (s *Store) Watch(auth backend.AuthSource) {
	auth.Subscribe(func(sess *backend.Session) {
		s.SetSession(context.Background(), sess)
	})
}

// SetSession installs (or clears) the session and transitions the store
// accordingly: nil resets to unauthenticated, non-nil loads the user's data.
func (s *Store) SetSession(ctx context.Context, sess *backend.Session) {
	s.mu.Lock()
	if sess == nil {
		s.session = nil
		s.state = StateUnauthenticated
		s.tasks = nil
		s.categories = nil
		s.selectedID = ""
		s.mu.Unlock()
		return
	}
	s.session = sess
	s.state = StateLoading
	s.mu.Unlock()

	if err := s.Activate(ctx); err != nil {
		s.logger.Error("load user data", "user", sess.UserID, "err", err)
	}
}

// Activate loads categories first, then tasks, and replaces local state
// wholesale. On failure the store ends up ready but empty; there is no
// partial-failure merge.
func (s *Store) Activate(ctx context.Context) error {
	s.mu.Lock()
	sess := s.session
	s.mu.Unlock()
	if sess == nil {
		return ErrNoSession
	}

	cats, err := s.client.FetchCategories(ctx, sess.UserID)
	if err == nil {
		var tasks []model.Task
		tasks, err = s.client.FetchTasks(ctx, sess.UserID)
		if err == nil {
			s.mu.Lock()
			s.categories = cats
			s.tasks = tasks
			s.state = StateReady
			s.mu.Unlock()
			return nil
		}
	}

	s.mu.Lock()
	s.categories = nil
	s.tasks = nil
	s.state = StateReady
	s.mu.Unlock()
	return fmt.Errorf("activate: %w", err)
}

// State returns the session-level state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Session returns the current session, or nil when signed out.
func (s *Store) Session() *backend.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Tasks returns a copy of the task list in display order.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Categories returns a copy of the category list in creation order.
func (s *Store) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Task looks up a task by id.
func (s *Store) Task(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return model.Task{}, false
}

// Select marks a task as the currently selected one. The selection is a
// transient pointer: it is cleared when the task is deleted and always
// resolves against the current state of the list.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

// ClearSelection drops the current selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = ""
}

// Selected returns the currently selected task, if any.
func (s *Store) Selected() (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedID == "" {
		return model.Task{}, false
	}
	if i := s.indexOf(s.selectedID); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return model.Task{}, false
}

// indexOf returns the position of id in the task list. Callers hold s.mu.
func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// userID returns the session user, or an error when signed out.
func (s *Store) userID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return "", ErrNoSession
	}
	return s.session.UserID, nil
}

// optimistic runs one mutation as the three-step protocol: apply the local
// change (under the lock, capturing its own rollback closure), issue the
// remote request, and on failure undo the local change. Each call captures
// its rollback baseline at call time, so overlapping calls are individually
// consistent even though no cross-call ordering is guaranteed.
func (s *Store) optimistic(ctx context.Context, op, userID string,
	apply func() error,
	remote func(ctx context.Context, userID string) error,
	rollback func()) error {

	s.mu.Lock()
	if err := apply(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	if err := remote(ctx, userID); err != nil {
		s.mu.Lock()
		rollback()
		s.mu.Unlock()
		s.logger.Error("backend request failed, rolled back", "op", op, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

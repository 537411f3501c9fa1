// Package backend defines the persistence contract the task store talks to,
// and its two implementations: SQLite and a single JSON file ("simple mode").
// The store treats the backend as the durable source of truth; identifiers
// and creation timestamps are assigned here, not by callers.
package backend

import (
	"context"
	"errors"

	"github.com/acampos/foco/internal/model"
)

// ErrNotFound is returned when an id does not exist for the given user.
var ErrNotFound = errors.New("backend: not found")

// Session identifies the signed-in user. A nil session means signed out.
type Session struct {
	UserID string
	Email  string
}

// AuthSource delivers session-change notifications. Subscribe calls fn with
// the current session immediately and again on every change.
type AuthSource interface {
	Subscribe(fn func(*Session))
}

// Client is the remote data store consumed by the task store. All rows are
// scoped to a user. Fetches are ordered: categories by creation time
// ascending, tasks by creation time descending.
type Client interface {
	FetchCategories(ctx context.Context, userID string) ([]model.Category, error)
	FetchTasks(ctx context.Context, userID string) ([]model.Task, error)

	// InsertTask assigns the id and creation timestamp and returns the
	// created row.
	InsertTask(ctx context.Context, userID string, t model.Task) (model.Task, error)
	// UpdateTask replaces every mutable field of the row keyed by t.ID.
	UpdateTask(ctx context.Context, userID string, t model.Task) error
	DeleteTask(ctx context.Context, userID, id string) error

	// InsertCategory assigns the id and creation timestamp and returns the
	// created row.
	InsertCategory(ctx context.Context, userID string, name string, color model.Color) (model.Category, error)
	// DeleteCategory removes the category and clears category_id on every
	// task row that referenced it.
	DeleteCategory(ctx context.Context, userID, id string) error

	Close() error
}

// StaticAuth is an AuthSource for local single-user deployments: one fixed
// session, delivered once.
type StaticAuth struct {
	session Session
}

// NewStaticAuth returns an auth source that always reports the given user.
func NewStaticAuth(userID, email string) *StaticAuth {
	return &StaticAuth{session: Session{UserID: userID, Email: email}}
}

// Subscribe implements AuthSource.
func (a *StaticAuth) Subscribe(fn func(*Session)) {
	s := a.session
	fn(&s)
}

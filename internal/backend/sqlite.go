package backend

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/acampos/foco/internal/model"
)

// SQLite is a Client backed by a local SQLite database.
type SQLite struct {
	db *sql.DB
}

func defaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	dir := filepath.Join(dataHome, "foco")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "foco.db"), nil
}

// NewSQLite opens (or creates) the database and ensures the schema exists.
// An empty path selects the default location under XDG_DATA_HOME.
func NewSQLite(dbPath string) (*SQLite, error) {
	if dbPath == "" {
		var err error
		dbPath, err = defaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("determine db path: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func ensureSchema(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS categories (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	name       TEXT NOT NULL,
	color      TEXT NOT NULL DEFAULT 'blue',
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tasks (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL,
	text          TEXT NOT NULL,
	completed     INTEGER NOT NULL DEFAULT 0,
	color         TEXT NOT NULL DEFAULT 'blue',
	category_id   TEXT REFERENCES categories(id) ON DELETE SET NULL,
	created_at    TEXT NOT NULL,
	date          TEXT,
	time          TEXT,
	repeat        TEXT,
	custom_repeat TEXT,
	description   TEXT NOT NULL DEFAULT '',
	subtasks      TEXT
);`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return ensureTaskColumns(db)
}

// ensureTaskColumns backfills columns added after the first release, so an
// old database keeps working without a schema version table.
func ensureTaskColumns(db *sql.DB) error {
	required := map[string]string{
		"time":          "ALTER TABLE tasks ADD COLUMN time TEXT",
		"repeat":        "ALTER TABLE tasks ADD COLUMN repeat TEXT",
		"custom_repeat": "ALTER TABLE tasks ADD COLUMN custom_repeat TEXT",
		"description":   "ALTER TABLE tasks ADD COLUMN description TEXT NOT NULL DEFAULT ''",
		"subtasks":      "ALTER TABLE tasks ADD COLUMN subtasks TEXT",
	}

	rows, err := db.Query("PRAGMA table_info(tasks)")
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dfltValue sql.NullString
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &pk); err != nil {
			return err
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for col, alter := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		if _, err := db.Exec(alter); err != nil {
			return fmt.Errorf("add column %s: %w", col, err)
		}
	}
	return nil
}

const taskColumns = "id, text, completed, color, category_id, created_at, date, time, repeat, custom_repeat, description, subtasks"

func scanTask(scanner interface{ Scan(...any) error }) (model.Task, error) {
	var t model.Task
	var comp int
	var createdStr string
	var categoryID, date, timeOfDay, repeat, customRepeat, subtasks sql.NullString
	if err := scanner.Scan(&t.ID, &t.Text, &comp, &t.Color, &categoryID, &createdStr,
		&date, &timeOfDay, &repeat, &customRepeat, &t.Description, &subtasks); err != nil {
		return model.Task{}, err
	}
	t.Completed = comp != 0
	t.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	t.CategoryID = categoryID.String
	t.Date = date.String
	t.Time = timeOfDay.String
	t.Repeat = model.Repeat(repeat.String)
	if customRepeat.Valid && customRepeat.String != "" {
		var cr model.CustomRepeat
		if err := json.Unmarshal([]byte(customRepeat.String), &cr); err == nil {
			t.CustomRepeat = &cr
		}
	}
	if subtasks.Valid && subtasks.String != "" {
		var subs []model.Subtask
		if err := json.Unmarshal([]byte(subtasks.String), &subs); err == nil {
			t.Subtasks = subs
		}
	}
	return t, nil
}

func taskArgs(t model.Task) (customRepeat, subtasks sql.NullString, err error) {
	if t.CustomRepeat != nil {
		b, err := json.Marshal(t.CustomRepeat)
		if err != nil {
			return customRepeat, subtasks, fmt.Errorf("marshal custom repeat: %w", err)
		}
		customRepeat = sql.NullString{String: string(b), Valid: true}
	}
	if len(t.Subtasks) > 0 {
		b, err := json.Marshal(t.Subtasks)
		if err != nil {
			return customRepeat, subtasks, fmt.Errorf("marshal subtasks: %w", err)
		}
		subtasks = sql.NullString{String: string(b), Valid: true}
	}
	return customRepeat, subtasks, nil
}

// FetchCategories implements Client.
func (s *SQLite) FetchCategories(ctx context.Context, userID string) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, color, created_at FROM categories WHERE user_id = ? ORDER BY created_at ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var cats []model.Category
	for rows.Next() {
		var c model.Category
		var createdStr string
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &createdStr); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// FetchTasks implements Client.
func (s *SQLite) FetchTasks(ctx context.Context, userID string) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// InsertTask implements Client.
func (s *SQLite) InsertTask(ctx context.Context, userID string, t model.Task) (model.Task, error) {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()

	customRepeat, subtasks, err := taskArgs(t)
	if err != nil {
		return model.Task{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, text, completed, color, category_id, created_at, date, time, repeat, custom_repeat, description, subtasks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, userID, t.Text, boolInt(t.Completed), string(t.Color), nullable(t.CategoryID),
		t.CreatedAt.Format(time.RFC3339Nano), nullable(t.Date), nullable(t.Time),
		nullable(string(t.Repeat)), customRepeat, t.Description, subtasks)
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ? AND user_id = ?", t.ID, userID)
	created, err := scanTask(row)
	if err != nil {
		return model.Task{}, fmt.Errorf("reread task %s: %w", t.ID, err)
	}
	return created, nil
}

// UpdateTask implements Client.
func (s *SQLite) UpdateTask(ctx context.Context, userID string, t model.Task) error {
	customRepeat, subtasks, err := taskArgs(t)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET text = ?, completed = ?, color = ?, category_id = ?, date = ?, time = ?,
		 repeat = ?, custom_repeat = ?, description = ?, subtasks = ?
		 WHERE id = ? AND user_id = ?`,
		t.Text, boolInt(t.Completed), string(t.Color), nullable(t.CategoryID),
		nullable(t.Date), nullable(t.Time), nullable(string(t.Repeat)),
		customRepeat, t.Description, subtasks, t.ID, userID)
	if err != nil {
		return fmt.Errorf("update task %s: %w", t.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update task %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

// DeleteTask implements Client.
func (s *SQLite) DeleteTask(ctx context.Context, userID, id string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

// InsertCategory implements Client.
func (s *SQLite) InsertCategory(ctx context.Context, userID, name string, color model.Color) (model.Category, error) {
	c := model.Category{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (id, user_id, name, color, created_at) VALUES (?, ?, ?, ?, ?)",
		c.ID, userID, c.Name, string(c.Color), c.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return model.Category{}, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}

// DeleteCategory implements Client. The category reference on tasks is
// cleared in the same transaction as the delete.
func (s *SQLite) DeleteCategory(ctx context.Context, userID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete category: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE tasks SET category_id = NULL WHERE category_id = ? AND user_id = ?", id, userID); err != nil {
		return fmt.Errorf("detach category %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx,
		"DELETE FROM categories WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete category %s: %w", id, ErrNotFound)
	}
	return tx.Commit()
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

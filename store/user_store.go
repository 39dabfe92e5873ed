// Package store provides the SQLite-backed user data source.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sajidahmed21/LearnR/internal/persistence"
	"github.com/sajidahmed21/LearnR/model"
	"github.com/sajidahmed21/LearnR/services"
)

// DefaultQueryTimeout bounds one candidate fetch when no timeout is configured
const DefaultQueryTimeout = 2 * time.Second

const (
	fetchByNameQuery = `
		SELECT u.id, u.name, lc.username
		FROM users u
		LEFT OUTER JOIN login_credentials lc ON lc.user_id = u.id
		WHERE u.name LIKE ? ESCAPE '\'
		ORDER BY u.id
	`
	fetchByHandleQuery = `
		SELECT u.id, u.name, lc.username
		FROM users u
		INNER JOIN login_credentials lc ON lc.user_id = u.id
		WHERE lc.username LIKE ? ESCAPE '\'
		ORDER BY u.id
	`
)

// UserStore serves candidate users out of SQLite
type UserStore struct {
	db           *sql.DB
	queryTimeout time.Duration
}

var _ services.CandidateSource = (*UserStore)(nil)

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewUserStore opens (and migrates) the database at dbPath.
// A non-positive queryTimeout falls back to DefaultQueryTimeout.
func NewUserStore(dbPath string, queryTimeout time.Duration) (*UserStore, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	if queryTimeout <= 0 {
		queryTimeout = DefaultQueryTimeout
	}
	return &UserStore{db: db, queryTimeout: queryTimeout}, nil
}

// Close closes the database connection
func (s *UserStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable
func (s *UserStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// FetchCandidates returns every user whose field contains substring.
// Matching is a plain, ASCII case-insensitive substring test; LIKE wildcards
// in substring are matched literally.
func (s *UserStore) FetchCandidates(ctx context.Context, substring string, field model.SearchField) ([]model.Candidate, error) {
	var query string
	switch field {
	case model.FieldDisplayName:
		query = fetchByNameQuery
	case model.FieldHandle:
		query = fetchByHandleQuery
	default:
		return nil, fmt.Errorf("unsupported search field %d", field)
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, containsPattern(substring))
	if err != nil {
		return nil, fmt.Errorf("failed to query users by %s: %w", field, err)
	}
	defer func() { _ = rows.Close() }()

	candidates := make([]model.Candidate, 0)
	for rows.Next() {
		var (
			id       int64
			name     sql.NullString
			username sql.NullString
		)
		if err := rows.Scan(&id, &name, &username); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}

		matching := name.String
		if field == model.FieldHandle {
			matching = username.String
		}
		candidates = append(candidates, model.Candidate{
			ID:             id,
			DisplayValue:   DisplayValue(name.String, username.String),
			MatchingString: matching,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return candidates, nil
}

// InsertUser stores a user and, when username is set, its login handle.
func (s *UserStore) InsertUser(ctx context.Context, name, username string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id, err := insertUser(ctx, tx, name, username)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit user: %w", err)
	}
	return id, nil
}

func insertUser(ctx context.Context, tx *sql.Tx, name, username string) (int64, error) {
	res, err := tx.ExecContext(ctx, `INSERT INTO users (name) VALUES (?)`, nullIfEmpty(name))
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get user id: %w", err)
	}

	if username != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO login_credentials (user_id, username) VALUES (?, ?)`, id, username,
		); err != nil {
			return 0, fmt.Errorf("failed to insert login credentials for '%s': %w", username, err)
		}
	}
	return id, nil
}

// Seed inserts every fixture user in one transaction and returns how many
// users were added.
func (s *UserStore) Seed(ctx context.Context, users []persistence.UserFixture) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, u := range users {
		if _, err := insertUser(ctx, tx, strings.TrimSpace(u.Name), strings.TrimSpace(u.Username)); err != nil {
			return 0, fmt.Errorf("failed to seed users[%d]: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return len(users), nil
}

// Count returns the number of stored users
func (s *UserStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// DisplayValue renders a user as "name (username)", falling back to
// whichever of the two is set.
func DisplayValue(name, username string) string {
	switch {
	case name != "" && username != "":
		return name + " (" + username + ")"
	case username != "":
		return username
	default:
		return name
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching substring anywhere.
func containsPattern(substring string) string {
	return "%" + likeEscaper.Replace(substring) + "%"
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

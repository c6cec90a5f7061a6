package repo

import (
	"context"
	"errors"

	dom "github.com/ananyapurwar/ALGOTRACK/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// DB is the subset of pgxpool.Pool the repo needs. Narrow so tests can
// substitute a mock pool.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// UserRepo provides user persistence.
type UserRepo interface {
	Create(ctx context.Context, username, passwordHash string, handle *string, isAdmin bool) (dom.User, error)
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	UpdateHandle(ctx context.Context, id int64, handle string) error
	List(ctx context.Context) ([]dom.User, error)
	DeleteAll(ctx context.Context) error
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db DB
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db DB) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// Create inserts a new user and returns it. A duplicate username surfaces
// as the store's unique violation, unchanged; the caller maps it.
func (r *PGUserRepo) Create(ctx context.Context, username, passwordHash string, handle *string, isAdmin bool) (dom.User, error) {
	query := `
		INSERT INTO users (username, password_hash, handle, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, password_hash, handle, is_admin, created_at`
	var u dom.User
	err := r.db.QueryRow(ctx, query, username, passwordHash, handle, isAdmin).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Handle, &u.IsAdmin, &u.CreatedAt,
	)
	return u, err
}

// GetByUsername returns the user by username, or ErrNotFound.
func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, handle, is_admin, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Handle, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

// UpdateHandle sets the handle for the given user id. ErrNotFound if no row matched.
func (r *PGUserRepo) UpdateHandle(ctx context.Context, id int64, handle string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET handle = $2 WHERE id = $1`, id, handle)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all users, newest first. Ids break created_at ties since
// seeded rows can share a timestamp.
func (r *PGUserRepo) List(ctx context.Context) ([]dom.User, error) {
	query := `
		SELECT id, username, password_hash, handle, is_admin, created_at
		FROM users ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.User
	for rows.Next() {
		var u dom.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Handle, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// DeleteAll wipes the table and restarts id assignment. Only the
// standalone initializer calls this.
func (r *PGUserRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `TRUNCATE users RESTART IDENTITY`)
	return err
}

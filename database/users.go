package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/biosecret/go-tasks/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateEmail reports a signup against an email that is already
// registered. It is raised from the unique constraint on users.email, so it
// holds even when two concurrent signups pass the existence pre-check.
var ErrDuplicateEmail = errors.New("email already registered")

const queryTimeout = 5 * time.Second

// UserStore persists user accounts.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByEmail returns the user with the given email, or (nil, nil) when no
// such user exists. Emails are matched case-sensitively.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, password_hash, created_at, updated_at
			  FROM users
			  WHERE email = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u models.User
	err := s.db.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user and returns it with the storage-assigned id and
// creation time. A unique violation on email maps to ErrDuplicateEmail.
func (s *UserStore) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	query := `INSERT INTO users (email, password_hash)
			  VALUES ($1, $2)
			  RETURNING id, created_at`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	u := models.User{Email: email, PasswordHash: passwordHash}
	err := s.db.QueryRowContext(ctx, query, email, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &u, nil
}

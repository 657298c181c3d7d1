package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/sohelr/goblog/internal/models"
)

// dummyHash is compared against when the username does not exist, so a
// failed login costs the same whether or not the user is real.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

type UserStore struct {
	DB *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{DB: db}
}

// Register hashes the password and inserts the user. Uniqueness is left
// to the database constraint so two concurrent registrations of the same
// username cannot both succeed.
func (s *UserStore) Register(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("store: hash password: %w", err)
	}

	u := models.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	query := s.DB.Rebind(`
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`)
	err = s.DB.QueryRowxContext(ctx, query, u.Username, u.PasswordHash, u.CreatedAt).Scan(&u.ID)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateUsername
	}
	if err != nil {
		return nil, fmt.Errorf("store: insert user: %w", err)
	}

	return &u, nil
}

// Authenticate returns the user's id when the username exists and the
// password matches its stored hash. Any other outcome is
// ErrInvalidCredentials.
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (int64, error) {
	var u models.User
	query := s.DB.Rebind(`
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = ?
	`)
	err := s.DB.GetContext(ctx, &u, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		// burn a comparison anyway, see dummyHash
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return 0, ErrInvalidCredentials
	}
	if err != nil {
		return 0, fmt.Errorf("store: look up user: %w", err)
	}

	if u.PasswordHash == "" {
		return 0, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return 0, ErrInvalidCredentials
	}

	return u.ID, nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	query := s.DB.Rebind(`
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE id = ?
	`)
	err := s.DB.GetContext(ctx, &u, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get user: %w", err)
	}
	return &u, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	query := s.DB.Rebind(`
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = ?
	`)
	err := s.DB.GetContext(ctx, &u, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get user: %w", err)
	}
	return &u, nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("store: count users: %w", err)
	}
	return n, nil
}

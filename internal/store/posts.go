package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sohelr/goblog/internal/models"
)

type PostStore struct {
	DB *sqlx.DB
}

func NewPostStore(db *sqlx.DB) *PostStore {
	return &PostStore{DB: db}
}

// ListRecent returns all posts newest first. Posts sharing a timestamp
// come back latest-inserted first.
func (s *PostStore) ListRecent(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.DB.SelectContext(ctx, &posts, `
		SELECT p.id, p.user_id, p.title, p.content, p.created_at, u.username AS author
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("store: list posts: %w", err)
	}
	return posts, nil
}

func (s *PostStore) Get(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	query := s.DB.Rebind(`
		SELECT p.id, p.user_id, p.title, p.content, p.created_at, u.username AS author
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = ?
	`)
	err := s.DB.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get post: %w", err)
	}
	return &p, nil
}

// Create inserts a post for authorID stamped with the current time.
func (s *PostStore) Create(ctx context.Context, authorID int64, title, content string) (*models.Post, error) {
	return s.CreateDated(ctx, authorID, title, content, time.Now().UTC())
}

// CreateDated is Create with an explicit timestamp; the seeding CLI uses
// it to backdate posts.
func (s *PostStore) CreateDated(ctx context.Context, authorID int64, title, content string, createdAt time.Time) (*models.Post, error) {
	p := models.Post{
		UserID:    authorID,
		Title:     title,
		Content:   content,
		CreatedAt: createdAt,
	}

	query := s.DB.Rebind(`
		INSERT INTO posts (user_id, title, content, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)
	err := s.DB.QueryRowxContext(ctx, query, p.UserID, p.Title, p.Content, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("store: insert post: %w", err)
	}

	return &p, nil
}

// Update replaces title and content, but only when callerID wrote the
// post. The ownership check and the write share one transaction so a
// racing delete cannot slip between them.
func (s *PostStore) Update(ctx context.Context, id, callerID int64, title, content string) error {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	if err := ownedPost(ctx, tx, id, callerID); err != nil {
		return err
	}

	query := tx.Rebind(`UPDATE posts SET title = ?, content = ? WHERE id = ?`)
	if _, err := tx.ExecContext(ctx, query, title, content, id); err != nil {
		return fmt.Errorf("store: update post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// Delete removes the post entirely, under the same ownership rule as
// Update.
func (s *PostStore) Delete(ctx context.Context, id, callerID int64) error {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	if err := ownedPost(ctx, tx, id, callerID); err != nil {
		return err
	}

	query := tx.Rebind(`DELETE FROM posts WHERE id = ?`)
	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("store: delete post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// ownedPost checks, inside tx, that the post exists and callerID is its
// author. Edit and delete share this guard.
func ownedPost(ctx context.Context, tx *sqlx.Tx, id, callerID int64) error {
	var authorID int64
	query := tx.Rebind(`SELECT user_id FROM posts WHERE id = ?`)
	err := tx.GetContext(ctx, &authorID, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: look up post: %w", err)
	}
	if authorID != callerID {
		return ErrNotOwner
	}
	return nil
}

func (s *PostStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM posts`); err != nil {
		return 0, fmt.Errorf("store: count posts: %w", err)
	}
	return n, nil
}

package store_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohelr/goblog/internal/store"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	users := store.NewUserStore(db)
	ctx := context.Background()

	u, err := users.Register(ctx, "alice", "Secret123!")
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	assert.Equal(t, "alice", u.Username)

	// only a derived hash is stored, never the plaintext
	assert.True(t, strings.HasPrefix(u.PasswordHash, "$2a$"), "expected a bcrypt hash, got %q", u.PasswordHash)
	assert.NotContains(t, u.PasswordHash, "Secret123!")

	id, err := users.Authenticate(ctx, "alice", "Secret123!")
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	users := store.NewUserStore(db)
	ctx := context.Background()

	_, err := users.Register(ctx, "alice", "Secret123!")
	require.NoError(t, err)

	_, err = users.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	users := store.NewUserStore(db)

	_, err := users.Authenticate(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
}

func TestAuthenticateMissingHash(t *testing.T) {
	db := setupTestDB(t)
	users := store.NewUserStore(db)
	ctx := context.Background()

	// a row with no hash must fail the check, not blow up
	_, err := db.Exec(`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		"ghost", "", time.Now().UTC())
	require.NoError(t, err)

	_, err = users.Authenticate(ctx, "ghost", "anything")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	users := store.NewUserStore(db)
	ctx := context.Background()

	_, err := users.Register(ctx, "alice", "Secret123!")
	require.NoError(t, err)

	_, err = users.Register(ctx, "alice", "Different456!")
	assert.ErrorIs(t, err, store.ErrDuplicateUsername)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM users WHERE username = 'alice'`))
	assert.Equal(t, 1, n, "the failed registration must not leave a row behind")
}

func TestRegisterUsernameCaseSensitive(t *testing.T) {
	db := setupTestDB(t)
	users := store.NewUserStore(db)
	ctx := context.Background()

	_, err := users.Register(ctx, "alice", "Secret123!")
	require.NoError(t, err)

	// exact-match uniqueness: a different casing is a different user
	u, err := users.Register(ctx, "Alice", "Secret123!")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Username)
}

func TestGetByID(t *testing.T) {
	db := setupTestDB(t)
	users := store.NewUserStore(db)
	ctx := context.Background()

	u, err := users.Register(ctx, "alice", "Secret123!")
	require.NoError(t, err)

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = users.GetByID(ctx, u.ID+999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetByUsername(t *testing.T) {
	db := setupTestDB(t)
	users := store.NewUserStore(db)
	ctx := context.Background()

	u, err := users.Register(ctx, "alice", "Secret123!")
	require.NoError(t, err)

	got, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = users.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

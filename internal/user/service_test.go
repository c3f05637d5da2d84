package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	users  map[string]*User
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*User)}
}

func (f *fakeStore) Create(_ context.Context, username, passwordHash string) (*User, error) {
	f.nextID++
	u := &User{
		ID:           f.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	f.users[username] = u
	return u, nil
}

func (f *fakeStore) GetByUsername(_ context.Context, username string) (*User, error) {
	return f.users[username], nil
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	return NewService(store, NewTokenManager("test-secret", time.Hour)), store
}

func TestService_Register(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "dana", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, "dana", u.Username)

	// The stored credential is a bcrypt hash, never the password itself.
	stored := store.users["dana"]
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse battery")))

	_, err = svc.Register(ctx, "dana", "another password")
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(ctx, "eve", "short")
	require.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.Register(ctx, "   ", "long enough password")
	require.ErrorIs(t, err, ErrEmptyUsername)
}

func TestService_Login(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "dana", "correct horse battery")
	require.NoError(t, err)

	token, u, err := svc.Login(ctx, "dana", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "dana", u.Username)

	_, _, err = svc.Login(ctx, "dana", "wrong password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown user fails identically to a wrong password.
	_, _, err = svc.Login(ctx, "mallory", "correct horse battery")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

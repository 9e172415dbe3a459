package service

import (
	"context"
	"testing"

	"backend/customerrors"
	"backend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (f *fakeUserStore) Insert(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.Username]; ok {
		return customerrors.ErrUserAlreadyExists
	}
	f.users[user.Username] = user
	return nil
}

func TestCreateUserHashesPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	user, err := svc.CreateUser(context.Background(), model.RegisterRequest{
		Username: "alice",
		Password: "hunter22",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.Password, "password must never be stored in plaintext")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")))
}

func TestCreateUserDuplicateLeavesOriginalUntouched(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	first, err := svc.CreateUser(context.Background(), model.RegisterRequest{
		Username: "alice",
		Password: "hunter22",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), model.RegisterRequest{
		Username: "alice",
		Password: "different",
		Email:    "other@example.com",
	})
	require.ErrorIs(t, err, customerrors.ErrUserAlreadyExists)

	stored := store.users["alice"]
	require.NotNil(t, stored)
	assert.Equal(t, first.Password, stored.Password)
	assert.Equal(t, "alice@example.com", stored.Email)
}

func TestVerifyCredentials(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	_, err := svc.CreateUser(context.Background(), model.RegisterRequest{
		Username: "alice",
		Password: "hunter22",
	})
	require.NoError(t, err)

	user, err := svc.VerifyCredentials(context.Background(), "alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.VerifyCredentials(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, customerrors.ErrInvalidCredentials)

	// Unknown user gets the same generic error as a wrong password.
	_, err = svc.VerifyCredentials(context.Background(), "nobody", "hunter22")
	assert.ErrorIs(t, err, customerrors.ErrInvalidCredentials)
}

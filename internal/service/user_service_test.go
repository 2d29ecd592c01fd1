package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/makara-hq/portfolio-backend/internal/repository"
)

func newUserService() UserService {
	return NewUserService(repository.NewMemoryUserRepository(), nil, nil)
}

func TestUserCreateHashesPassword(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	user, err := svc.Create(ctx, "jane@acme.rw", "Jane Doe", "s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret-pass")))
}

func TestUserCreateRejectsExistingEmail(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	_, err := svc.Create(ctx, "jane@acme.rw", "Jane Doe", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "jane@acme.rw", "Jane D.", "other-pass")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestUserPartialUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	created, err := svc.Create(ctx, "jane@acme.rw", "Jane Doe", "s3cret-pass")
	require.NoError(t, err)

	name := "Jane D. Moyo"
	updated, err := svc.Update(ctx, "jane@acme.rw", UserUpdate{FullName: &name})
	require.NoError(t, err)

	assert.Equal(t, "Jane D. Moyo", updated.FullName)
	// Password untouched by a name-only update.
	assert.Equal(t, created.Password, updated.Password)

	newPass := "new-pass"
	updated, err = svc.Update(ctx, "jane@acme.rw", UserUpdate{Password: &newPass})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("new-pass")))
	assert.Equal(t, "Jane D. Moyo", updated.FullName)
}

func TestUserUpdateUnknownIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	name := "Nobody"
	_, err := svc.Update(ctx, "ghost@acme.rw", UserUpdate{FullName: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserDeleteThenGetIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	_, err := svc.Create(ctx, "jane@acme.rw", "Jane Doe", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "jane@acme.rw"))

	_, err = svc.GetByEmail(ctx, "jane@acme.rw")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "jane@acme.rw"), ErrNotFound)
}

func TestUserListSearch(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	_, err := svc.Create(ctx, "jane@acme.rw", "Jane Doe", "pass-one")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "john@umoja.rw", "John Smith", "pass-two")
	require.NoError(t, err)

	matches, err := svc.List(ctx, ListParams{Query: "smith"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "john@umoja.rw", matches[0].Email)
}

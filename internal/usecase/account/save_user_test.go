package account

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/testutil"
)

func newSaveUser(t *testing.T) (*SaveUser, *repository.LaundryGormRepository) {
	repo := repository.NewLaundryGormRepository(testutil.NewDB(t))
	return NewSaveUser(repo, nil), repo
}

func TestCreateUserHashesPassword(t *testing.T) {
	uc, _ := newSaveUser(t)

	u, err := uc.Create(context.Background(), 1, UserInput{
		Username:  "alice",
		Email:     " Alice@Example.COM ",
		Password:  "s3cret",
		Phone:     "11987654321",
		Apartment: "204",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
	assert.False(t, u.Bolsista)
}

func TestCreateUserValidation(t *testing.T) {
	uc, _ := newSaveUser(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, 1, UserInput{Username: "alice", Password: "x", Phone: "12-34"})
	assert.ErrorIs(t, err, laundry.ErrInvalidPhone)

	_, err = uc.Create(ctx, 1, UserInput{Username: "alice"})
	assert.ErrorIs(t, err, laundry.ErrPasswordRequired)

	_, err = uc.Create(ctx, 1, UserInput{Username: "alice", Password: "x"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, 1, UserInput{Username: "alice", Password: "y"})
	assert.ErrorIs(t, err, laundry.ErrUsernameTaken)
}

func TestUpdateUserKeepsPasswordWhenEmpty(t *testing.T) {
	uc, repo := newSaveUser(t)
	ctx := context.Background()

	u, err := uc.Create(ctx, 1, UserInput{Username: "alice", Password: "first"})
	require.NoError(t, err)
	hash := u.PasswordHash

	updated, err := uc.Update(ctx, 1, u.ID, UserInput{Username: "alice", Name: "Alice", Bolsista: true})
	require.NoError(t, err)
	assert.Equal(t, hash, updated.PasswordHash)

	stored, err := repo.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stored.Bolsista)
	assert.Equal(t, "Alice", stored.Name)

	_, err = uc.Update(ctx, 1, 999, UserInput{Username: "x"})
	assert.ErrorIs(t, err, laundry.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	uc, _ := newSaveUser(t)
	ctx := context.Background()

	u, err := uc.Create(ctx, 1, UserInput{Username: "alice", Password: "x"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, 1, u.ID))
	assert.ErrorIs(t, uc.Delete(ctx, 1, u.ID), laundry.ErrUserNotFound)
}

type allowDomains map[string]bool

func (a allowDomains) Valid(email string) bool {
	return a[email[strings.LastIndex(email, "@")+1:]]
}

func TestCreateUserChecksEmailDomain(t *testing.T) {
	uc, _ := newSaveUser(t)
	uc.EmailDomains = allowDomains{"ufv.br": true}
	ctx := context.Background()

	_, err := uc.Create(ctx, 1, UserInput{Username: "alice", Password: "x", Email: "alice@nowhere.test"})
	assert.ErrorIs(t, err, laundry.ErrInvalidEmail)

	u, err := uc.Create(ctx, 1, UserInput{Username: "alice", Password: "x", Email: "Alice@UFV.br"})
	require.NoError(t, err)
	assert.Equal(t, "alice@ufv.br", u.Email)

	_, err = uc.Create(ctx, 1, UserInput{Username: "bob", Password: "x"})
	assert.NoError(t, err)
}

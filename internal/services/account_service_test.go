package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devtutor/internal/models/db_models"
	"devtutor/pkg/utils"
)

type fakeAccountRepo struct {
	account *db_models.Account
	err     error
}

func (f *fakeAccountRepo) Insert(_ context.Context, account *db_models.Account) error {
	f.account = account
	return f.err
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id string) (*db_models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.account == nil || f.account.ID.String() != id {
		return nil, nil
	}
	return f.account, nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.account == nil || f.account.Email != email {
		return nil, nil
	}
	return f.account, nil
}

func TestGetProfile(t *testing.T) {
	id := uuid.New()
	repo := &fakeAccountRepo{account: &db_models.Account{
		BaseModel: db_models.BaseModel{ID: id},
		Name:      "Ada",
		Email:     "ada@example.com",
	}}
	svc := NewAccountService(repo)

	profile, err := svc.GetProfile(context.Background(), id.String())

	require.NoError(t, err)
	assert.Equal(t, id.String(), profile.ID)
	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, "ada@example.com", profile.Email)
}

func TestGetProfile_UnknownAccount(t *testing.T) {
	svc := NewAccountService(&fakeAccountRepo{})

	_, err := svc.GetProfile(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
}

func TestGetProfile_RepositoryError(t *testing.T) {
	svc := NewAccountService(&fakeAccountRepo{err: errors.New("connection reset")})

	_, err := svc.GetProfile(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}

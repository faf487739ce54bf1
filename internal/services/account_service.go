package services

import (
	"context"

	"devtutor/internal/models/db_models"
	"devtutor/internal/models/response_models"
	"devtutor/internal/repositories"
	"devtutor/pkg/utils"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, name, email, password string) (*response_models.AccountResponse, error)
	Login(ctx context.Context, email, password string) (*response_models.LoginResponse, error)
	GetProfile(ctx context.Context, accountID string) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountServiceInterface {
	return &AccountService{accountRepo: accountRepo}
}

func (a *AccountService) Register(ctx context.Context, name, email, password string) (*response_models.AccountResponse, error) {
	existing, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyRegistered
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	account := db_models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := a.accountRepo.Insert(ctx, &account); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.AccountResponse{
		ID:    account.ID.String(),
		Name:  account.Name,
		Email: account.Email,
	}, nil
}

// GetProfile resolves the account behind a token. A valid token whose account
// has since been deleted yields ErrAccountNotFound rather than a stale row.
func (a *AccountService) GetProfile(ctx context.Context, accountID string) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	return &response_models.AccountResponse{
		ID:    account.ID.String(),
		Name:  account.Name,
		Email: account.Email,
	}, nil
}

func (a *AccountService) Login(ctx context.Context, email, password string) (*response_models.LoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID)
	if err != nil {
		return nil, err
	}

	return &response_models.LoginResponse{
		Token: token,
		Account: response_models.AccountResponse{
			ID:    account.ID.String(),
			Name:  account.Name,
			Email: account.Email,
		},
	}, nil
}

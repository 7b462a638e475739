package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"secret-pages-service/internal/models"
	"secret-pages-service/internal/repositories"
)

type AccountRepositoryMock struct {
	mock.Mock
}

func (m *AccountRepositoryMock) Create(ctx context.Context, account models.Account) (models.Account, error) {
	args := m.Called(ctx, account)
	var out models.Account
	if val := args.Get(0); val != nil {
		out = val.(models.Account)
	}
	return out, args.Error(1)
}

func (m *AccountRepositoryMock) GetByEmail(ctx context.Context, email string) (models.Account, error) {
	args := m.Called(ctx, email)
	var out models.Account
	if val := args.Get(0); val != nil {
		out = val.(models.Account)
	}
	return out, args.Error(1)
}

func (m *AccountRepositoryMock) GetByID(ctx context.Context, id string) (models.Account, error) {
	args := m.Called(ctx, id)
	var out models.Account
	if val := args.Get(0); val != nil {
		out = val.(models.Account)
	}
	return out, args.Error(1)
}

func (m *AccountRepositoryMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ProfileRepositoryMock struct {
	mock.Mock
}

func (m *ProfileRepositoryMock) Upsert(ctx context.Context, profile models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *ProfileRepositoryMock) GetByEmail(ctx context.Context, email string) (models.Profile, error) {
	args := m.Called(ctx, email)
	var out models.Profile
	if val := args.Get(0); val != nil {
		out = val.(models.Profile)
	}
	return out, args.Error(1)
}

func (m *ProfileRepositoryMock) ListByIDs(ctx context.Context, ids []string) ([]models.Profile, error) {
	args := m.Called(ctx, ids)
	var out []models.Profile
	if val := args.Get(0); val != nil {
		out = val.([]models.Profile)
	}
	return out, args.Error(1)
}

type SecretMessageRepositoryMock struct {
	mock.Mock
}

func (m *SecretMessageRepositoryMock) Upsert(ctx context.Context, userID, message string) (models.SecretMessage, error) {
	args := m.Called(ctx, userID, message)
	var out models.SecretMessage
	if val := args.Get(0); val != nil {
		out = val.(models.SecretMessage)
	}
	return out, args.Error(1)
}

func (m *SecretMessageRepositoryMock) GetByUserID(ctx context.Context, userID string) (models.SecretMessage, error) {
	args := m.Called(ctx, userID)
	var out models.SecretMessage
	if val := args.Get(0); val != nil {
		out = val.(models.SecretMessage)
	}
	return out, args.Error(1)
}

func (m *SecretMessageRepositoryMock) ListByUserIDs(ctx context.Context, userIDs []string) ([]models.SecretMessage, error) {
	args := m.Called(ctx, userIDs)
	var out []models.SecretMessage
	if val := args.Get(0); val != nil {
		out = val.([]models.SecretMessage)
	}
	return out, args.Error(1)
}

type FriendshipRepositoryMock struct {
	mock.Mock
}

func (m *FriendshipRepositoryMock) Create(ctx context.Context, requesterID, receiverID string) (models.Friendship, error) {
	args := m.Called(ctx, requesterID, receiverID)
	var out models.Friendship
	if val := args.Get(0); val != nil {
		out = val.(models.Friendship)
	}
	return out, args.Error(1)
}

func (m *FriendshipRepositoryMock) ExistsBetween(ctx context.Context, userA, userB string) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *FriendshipRepositoryMock) ListAcceptedFor(ctx context.Context, userID string) ([]models.Friendship, error) {
	args := m.Called(ctx, userID)
	var out []models.Friendship
	if val := args.Get(0); val != nil {
		out = val.([]models.Friendship)
	}
	return out, args.Error(1)
}

func (m *FriendshipRepositoryMock) ListPendingFor(ctx context.Context, receiverID string) ([]models.Friendship, error) {
	args := m.Called(ctx, receiverID)
	var out []models.Friendship
	if val := args.Get(0); val != nil {
		out = val.([]models.Friendship)
	}
	return out, args.Error(1)
}

func (m *FriendshipRepositoryMock) Accept(ctx context.Context, requesterID, receiverID string) error {
	args := m.Called(ctx, requesterID, receiverID)
	return args.Error(0)
}

var _ repositories.AccountRepository = (*AccountRepositoryMock)(nil)
var _ repositories.ProfileRepository = (*ProfileRepositoryMock)(nil)
var _ repositories.SecretMessageRepository = (*SecretMessageRepositoryMock)(nil)
var _ repositories.FriendshipRepository = (*FriendshipRepositoryMock)(nil)

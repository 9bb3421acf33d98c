package mocks

import (
	"context"

	"materialhub/internal/model"
	"materialhub/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockVersionStore struct {
	mock.Mock
}

func (m *MockVersionStore) Append(ctx context.Context, nv repository.NewVersion) (*model.MaterialVersion, error) {
	args := m.Called(ctx, nv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MaterialVersion), args.Error(1)
}

func (m *MockVersionStore) ListVersions(ctx context.Context, key model.SlotKey) ([]model.MaterialVersion, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MaterialVersion), args.Error(1)
}

func (m *MockVersionStore) GetVersion(ctx context.Context, key model.SlotKey, seq int) (*model.MaterialVersion, error) {
	args := m.Called(ctx, key, seq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MaterialVersion), args.Error(1)
}

func (m *MockVersionStore) GetApproval(ctx context.Context, key model.SlotKey, seq int) (*model.ApprovalRecord, error) {
	args := m.Called(ctx, key, seq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApprovalRecord), args.Error(1)
}

func (m *MockVersionStore) SaveDecision(ctx context.Context, rec model.ApprovalRecord, promote bool) error {
	args := m.Called(ctx, rec, promote)
	return args.Error(0)
}

func (m *MockVersionStore) Rollback(ctx context.Context, key model.SlotKey, seq int) error {
	args := m.Called(ctx, key, seq)
	return args.Error(0)
}

func (m *MockVersionStore) GetCurrent(ctx context.Context, key model.SlotKey) (*model.MaterialVersion, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MaterialVersion), args.Error(1)
}

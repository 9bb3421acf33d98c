package mocks

import (
	"context"
	"io"
	"time"

	"materialhub/internal/model"
	"materialhub/internal/service"
	"materialhub/internal/spec"

	"github.com/stretchr/testify/mock"
)

type MockMaterialService struct {
	mock.Mock
}

func (m *MockMaterialService) Upload(ctx context.Context, key model.SlotKey, r io.Reader, filename, uploaderID string) (*service.UploadResult, error) {
	args := m.Called(ctx, key, r, filename, uploaderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockMaterialService) ListVersions(ctx context.Context, key model.SlotKey) ([]model.MaterialVersion, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MaterialVersion), args.Error(1)
}

func (m *MockMaterialService) GetVersion(ctx context.Context, key model.SlotKey, seq int) (*model.MaterialVersion, error) {
	args := m.Called(ctx, key, seq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MaterialVersion), args.Error(1)
}

func (m *MockMaterialService) GetCurrent(ctx context.Context, key model.SlotKey) (*model.MaterialVersion, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MaterialVersion), args.Error(1)
}

func (m *MockMaterialService) Download(ctx context.Context, key model.SlotKey, seq int, actorID string) (io.ReadCloser, *model.MaterialVersion, error) {
	args := m.Called(ctx, key, seq, actorID)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	var version *model.MaterialVersion
	if args.Get(1) != nil {
		version = args.Get(1).(*model.MaterialVersion)
	}
	return rc, version, args.Error(2)
}

func (m *MockMaterialService) PresignDownload(ctx context.Context, key model.SlotKey, seq int, actorID string, expiry time.Duration) (string, *model.MaterialVersion, error) {
	args := m.Called(ctx, key, seq, actorID, expiry)
	var version *model.MaterialVersion
	if args.Get(1) != nil {
		version = args.Get(1).(*model.MaterialVersion)
	}
	return args.String(0), version, args.Error(2)
}

func (m *MockMaterialService) Rollback(ctx context.Context, key model.SlotKey, seq int, actorID string) error {
	args := m.Called(ctx, key, seq, actorID)
	return args.Error(0)
}

func (m *MockMaterialService) Approve(ctx context.Context, key model.SlotKey, seq int, reviewerID, comment string) (*model.ApprovalRecord, error) {
	args := m.Called(ctx, key, seq, reviewerID, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApprovalRecord), args.Error(1)
}

func (m *MockMaterialService) Reject(ctx context.Context, key model.SlotKey, seq int, reviewerID, comment string) (*model.ApprovalRecord, error) {
	args := m.Called(ctx, key, seq, reviewerID, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApprovalRecord), args.Error(1)
}

func (m *MockMaterialService) Specs(platform model.Platform) []spec.PlatformSlotSpec {
	args := m.Called(platform)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]spec.PlatformSlotSpec)
}

package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"materialhub/internal/approval"
	"materialhub/internal/events"
	"materialhub/internal/metrics"
	"materialhub/internal/model"
	"materialhub/internal/repository"
	"materialhub/internal/spec"
	"materialhub/internal/storage"
	"materialhub/internal/validate"
)

var (
	ErrReaderNil = errors.New("reader is nil")

	// ErrNotFound covers unknown versions; unknown slots surface inside the
	// verdict as an UnknownSlot violation instead.
	ErrNotFound = repository.ErrNotFound
	ErrNoneYet  = repository.ErrNoneYet

	ErrInvalidTransition = approval.ErrInvalidTransition
	ErrCommentRequired   = approval.ErrCommentRequired
)

// UploadResult is the outcome of one upload attempt. Version is set only
// when the verdict accepted the file and the history append committed.
type UploadResult struct {
	Verdict validate.Verdict       `json:"verdict"`
	Version *model.MaterialVersion `json:"version,omitempty"`
}

// MaterialService is the use-case surface of the engine.
type MaterialService interface {
	// Upload validates the content against the slot's spec; on acceptance it
	// stores the blob, appends a pending version and emits events. A
	// rejected verdict is a normal result, not an error, and rejected bytes
	// are never stored.
	Upload(ctx context.Context, key model.SlotKey, r io.Reader, filename, uploaderID string) (*UploadResult, error)

	ListVersions(ctx context.Context, key model.SlotKey) ([]model.MaterialVersion, error)
	GetVersion(ctx context.Context, key model.SlotKey, sequenceNumber int) (*model.MaterialVersion, error)
	GetCurrent(ctx context.Context, key model.SlotKey) (*model.MaterialVersion, error)

	// Download streams the stored content of one version. The caller owns the
	// returned reader and must close it.
	Download(ctx context.Context, key model.SlotKey, sequenceNumber int, actorID string) (io.ReadCloser, *model.MaterialVersion, error)

	// PresignDownload returns a time-limited URL for one version's content.
	PresignDownload(ctx context.Context, key model.SlotKey, sequenceNumber int, actorID string, expiry time.Duration) (string, *model.MaterialVersion, error)

	// Rollback repoints the slot's current version. The target must already
	// exist; it is trusted by construction and never re-validated.
	Rollback(ctx context.Context, key model.SlotKey, sequenceNumber int, actorID string) error

	// Approve promotes a pending version to the slot's current.
	Approve(ctx context.Context, key model.SlotKey, sequenceNumber int, reviewerID, comment string) (*model.ApprovalRecord, error)

	// Reject finalizes a pending version as rejected; comment is mandatory.
	Reject(ctx context.Context, key model.SlotKey, sequenceNumber int, reviewerID, comment string) (*model.ApprovalRecord, error)

	// Specs lists the platform's slot specifications.
	Specs(platform model.Platform) []spec.PlatformSlotSpec
}

type materialService struct {
	validator *validate.Validator
	registry  spec.Registry
	store     storage.Storage
	repo      repository.VersionStore
	sink      events.Sink
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewMaterialService constructs the engine facade.
func NewMaterialService(
	registry spec.Registry,
	store storage.Storage,
	repo repository.VersionStore,
	sink events.Sink,
	m *metrics.Metrics,
) MaterialService {
	return &materialService{
		validator: validate.New(registry),
		registry:  registry,
		store:     store,
		repo:      repo,
		sink:      sink,
		metrics:   m,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *materialService) Upload(ctx context.Context, key model.SlotKey, r io.Reader, filename, uploaderID string) (*UploadResult, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	res := s.validator.Validate(ctx, validate.Candidate{
		Data:       data,
		Filename:   filename,
		Platform:   key.Platform,
		Slot:       key.Slot,
		UploaderID: uploaderID,
	})
	s.sink.MaterialValidated(key, uploaderID, res.Verdict)
	s.countValidation(key, res.Verdict)

	if !res.Verdict.Accepted {
		return &UploadResult{Verdict: res.Verdict}, nil
	}

	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])
	format := res.Metadata.Format

	// Content-addressed key: re-uploading identical bytes overwrites the
	// same object, so the Put is idempotent and blobs dedup themselves.
	blobKey := fmt.Sprintf("materials/%s/%s/%s.%s", key.Platform, key.Slot, checksum, format.Ext())
	_, err = s.store.Put(ctx, blobKey, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: format.ContentType(),
		Metadata:    map[string]string{"original-filename": filename},
	})
	if err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}

	version, err := s.repo.Append(ctx, repository.NewVersion{
		SlotKey:    key,
		ContentRef: blobKey,
		Checksum:   checksum,
		Filename:   filename,
		Format:     format,
		ByteSize:   res.Metadata.ByteSize,
		Width:      res.Metadata.Width,
		Height:     res.Metadata.Height,
		HasAlpha:   res.Metadata.HasAlpha,
		UploaderID: uploaderID,
	})
	if err != nil {
		// The blob stays: content-addressed objects are harmless orphans,
		// and deleting could tear the reference out from under an earlier
		// version with identical bytes.
		return nil, fmt.Errorf("append version: %w", err)
	}

	if s.metrics != nil {
		s.metrics.VersionsAppendedTotal.WithLabelValues(string(key.Platform)).Inc()
	}
	return &UploadResult{Verdict: res.Verdict, Version: version}, nil
}

func (s *materialService) ListVersions(ctx context.Context, key model.SlotKey) ([]model.MaterialVersion, error) {
	return s.repo.ListVersions(ctx, key)
}

func (s *materialService) GetVersion(ctx context.Context, key model.SlotKey, seq int) (*model.MaterialVersion, error) {
	return s.repo.GetVersion(ctx, key, seq)
}

func (s *materialService) GetCurrent(ctx context.Context, key model.SlotKey) (*model.MaterialVersion, error) {
	return s.repo.GetCurrent(ctx, key)
}

func (s *materialService) Download(ctx context.Context, key model.SlotKey, seq int, actorID string) (io.ReadCloser, *model.MaterialVersion, error) {
	version, err := s.repo.GetVersion(ctx, key, seq)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, version.ContentRef)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch blob: %w", err)
	}
	s.sink.MaterialDownloaded(key, seq, actorID)
	return rc, version, nil
}

func (s *materialService) PresignDownload(ctx context.Context, key model.SlotKey, seq int, actorID string, expiry time.Duration) (string, *model.MaterialVersion, error) {
	version, err := s.repo.GetVersion(ctx, key, seq)
	if err != nil {
		return "", nil, err
	}
	u, err := s.store.PresignGet(ctx, version.ContentRef, expiry)
	if err != nil {
		return "", nil, fmt.Errorf("presign blob: %w", err)
	}
	s.sink.MaterialDownloaded(key, seq, actorID)
	return u, version, nil
}

func (s *materialService) Rollback(ctx context.Context, key model.SlotKey, seq int, actorID string) error {
	if err := s.repo.Rollback(ctx, key, seq); err != nil {
		return err
	}
	s.sink.SlotRolledBack(key, seq, actorID)
	if s.metrics != nil {
		s.metrics.RollbacksTotal.Inc()
	}
	return nil
}

func (s *materialService) Approve(ctx context.Context, key model.SlotKey, seq int, reviewerID, comment string) (*model.ApprovalRecord, error) {
	rec, err := s.repo.GetApproval(ctx, key, seq)
	if err != nil {
		return nil, err
	}
	decided, err := approval.Approve(*rec, reviewerID, comment, s.now())
	if err != nil {
		return nil, err
	}
	// Approval is what makes a version live, so the decision commit also
	// moves the slot's current pointer.
	if err := s.repo.SaveDecision(ctx, decided, true); err != nil {
		return nil, err
	}
	s.sink.VersionApproved(key, seq, reviewerID)
	if s.metrics != nil {
		s.metrics.ApprovalsTotal.WithLabelValues(string(model.ApprovalApproved)).Inc()
	}
	return &decided, nil
}

func (s *materialService) Reject(ctx context.Context, key model.SlotKey, seq int, reviewerID, comment string) (*model.ApprovalRecord, error) {
	rec, err := s.repo.GetApproval(ctx, key, seq)
	if err != nil {
		return nil, err
	}
	decided, err := approval.Reject(*rec, reviewerID, comment, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveDecision(ctx, decided, false); err != nil {
		return nil, err
	}
	s.sink.VersionRejected(key, seq, reviewerID, comment)
	if s.metrics != nil {
		s.metrics.ApprovalsTotal.WithLabelValues(string(model.ApprovalRejected)).Inc()
	}
	return &decided, nil
}

func (s *materialService) Specs(platform model.Platform) []spec.PlatformSlotSpec {
	return s.registry.ListForPlatform(platform)
}

func (s *materialService) countValidation(key model.SlotKey, verdict validate.Verdict) {
	if s.metrics == nil {
		return
	}
	outcome := "rejected"
	if verdict.Accepted {
		outcome = "accepted"
	}
	s.metrics.ValidationsTotal.WithLabelValues(string(key.Platform), key.Slot, outcome).Inc()
	for _, code := range verdict.Codes() {
		s.metrics.ViolationsTotal.WithLabelValues(string(code)).Inc()
	}
}

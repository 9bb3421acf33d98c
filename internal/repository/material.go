package repository

import (
	"context"
	"errors"

	"materialhub/internal/model"
)

var (
	// ErrNotFound means the slot has no such version (or no versions at all).
	ErrNotFound = errors.New("version not found")

	// ErrNoneYet means the slot exists but nothing has been made current.
	ErrNoneYet = errors.New("no current version")

	// ErrConcurrencyConflict means a slot-scoped write lost a race the
	// backend could not serialize. Safe to retry.
	ErrConcurrencyConflict = errors.New("concurrent slot write conflict")
)

// NewVersion is the payload for Append. The store assigns the sequence
// number; everything else is carried through from the accepted verdict.
type NewVersion struct {
	SlotKey    model.SlotKey
	ContentRef string
	Checksum   string
	Filename   string
	Format     model.Format
	ByteSize   int64
	Width      int
	Height     int
	HasAlpha   bool
	UploaderID string
}

// VersionStore is the append-only version history per material slot plus the
// approval records created alongside each version. Implementations must
// serialize writes per slot key: concurrent Appends on one slot never share
// a sequence number, and a decision or rollback racing an Append leaves the
// current pointer at a version that existed when the winner committed.
type VersionStore interface {
	// Append stores the next version of the slot in state pending, creating
	// its approval record, and returns it with the assigned sequence number
	// (monotonic per slot, starting at 1).
	Append(ctx context.Context, nv NewVersion) (*model.MaterialVersion, error)

	// ListVersions returns the slot's full history, newest last.
	ListVersions(ctx context.Context, key model.SlotKey) ([]model.MaterialVersion, error)

	// GetVersion returns one version or ErrNotFound.
	GetVersion(ctx context.Context, key model.SlotKey, sequenceNumber int) (*model.MaterialVersion, error)

	// GetApproval returns the approval record for one version or ErrNotFound.
	GetApproval(ctx context.Context, key model.SlotKey, sequenceNumber int) (*model.ApprovalRecord, error)

	// SaveDecision persists a decided approval record and mirrors the state
	// onto the version row. With promote set, the slot's current pointer
	// moves to this version in the same commit. Returns
	// ErrConcurrencyConflict if the stored record is no longer pending.
	SaveDecision(ctx context.Context, rec model.ApprovalRecord, promote bool) error

	// Rollback points current at an existing version; ErrNotFound if the
	// sequence number does not exist for the slot. Never deletes.
	Rollback(ctx context.Context, key model.SlotKey, sequenceNumber int) error

	// GetCurrent returns the version current points at, or ErrNoneYet.
	GetCurrent(ctx context.Context, key model.SlotKey) (*model.MaterialVersion, error)
}

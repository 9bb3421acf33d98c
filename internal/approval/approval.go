package approval

import (
	"errors"
	"fmt"
	"time"

	"materialhub/internal/model"
)

// Package approval implements the review lifecycle for material versions:
// pending -> approved | rejected, both terminal. A decided version is never
// reopened; a correction is a new upload. The functions are pure — they
// return the updated record and never touch storage.

var (
	// ErrInvalidTransition is returned when a decision is attempted on a
	// version that is no longer pending. The record is left untouched.
	ErrInvalidTransition = errors.New("invalid approval transition")

	// ErrCommentRequired is returned by Reject when no reason is given.
	// This is an argument error, not a state-machine error: rejections
	// without a stated reason are disallowed outright.
	ErrCommentRequired = errors.New("rejection comment is required")
)

// Approve moves a pending record to approved. The caller is responsible for
// promoting the version to the slot's current pointer on success.
func Approve(rec model.ApprovalRecord, reviewerID, comment string, now time.Time) (model.ApprovalRecord, error) {
	if rec.State != model.ApprovalPending {
		return rec, fmt.Errorf("approve %s seq %d: already %s: %w",
			rec.SlotKey, rec.SequenceNumber, rec.State, ErrInvalidTransition)
	}
	rec.State = model.ApprovalApproved
	rec.ReviewerID = reviewerID
	rec.Comment = comment
	rec.DecidedAt = &now
	return rec, nil
}

// Reject moves a pending record to rejected. A comment is mandatory.
func Reject(rec model.ApprovalRecord, reviewerID, comment string, now time.Time) (model.ApprovalRecord, error) {
	if comment == "" {
		return rec, ErrCommentRequired
	}
	if rec.State != model.ApprovalPending {
		return rec, fmt.Errorf("reject %s seq %d: already %s: %w",
			rec.SlotKey, rec.SequenceNumber, rec.State, ErrInvalidTransition)
	}
	rec.State = model.ApprovalRejected
	rec.ReviewerID = reviewerID
	rec.Comment = comment
	rec.DecidedAt = &now
	return rec, nil
}

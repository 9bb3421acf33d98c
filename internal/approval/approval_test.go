package approval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"materialhub/internal/model"
)

func pendingRecord() model.ApprovalRecord {
	return model.ApprovalRecord{
		SlotKey:        model.SlotKey{Platform: model.PlatformWebBrand, Slot: "logo"},
		SequenceNumber: 3,
		State:          model.ApprovalPending,
		CreatedAt:      time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestApprove(t *testing.T) {
	now := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)

	t.Run("pending record is approved", func(t *testing.T) {
		rec, err := Approve(pendingRecord(), "reviewer-1", "looks good", now)
		require.NoError(t, err)
		assert.Equal(t, model.ApprovalApproved, rec.State)
		assert.Equal(t, "reviewer-1", rec.ReviewerID)
		assert.Equal(t, "looks good", rec.Comment)
		require.NotNil(t, rec.DecidedAt)
		assert.Equal(t, now, *rec.DecidedAt)
	})

	t.Run("comment is optional", func(t *testing.T) {
		rec, err := Approve(pendingRecord(), "reviewer-1", "", now)
		require.NoError(t, err)
		assert.Equal(t, model.ApprovalApproved, rec.State)
	})

	t.Run("decided records are terminal", func(t *testing.T) {
		for _, state := range []model.ApprovalState{model.ApprovalApproved, model.ApprovalRejected} {
			in := pendingRecord()
			in.State = state

			out, err := Approve(in, "reviewer-2", "", now)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			// The record comes back untouched.
			assert.Equal(t, in, out)
		}
	})
}

func TestReject(t *testing.T) {
	now := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)

	t.Run("pending record is rejected", func(t *testing.T) {
		rec, err := Reject(pendingRecord(), "reviewer-1", "wrong proportions", now)
		require.NoError(t, err)
		assert.Equal(t, model.ApprovalRejected, rec.State)
		assert.Equal(t, "wrong proportions", rec.Comment)
		require.NotNil(t, rec.DecidedAt)
	})

	t.Run("comment is mandatory", func(t *testing.T) {
		in := pendingRecord()
		out, err := Reject(in, "reviewer-1", "", now)
		assert.ErrorIs(t, err, ErrCommentRequired)
		assert.Equal(t, in, out)
	})

	t.Run("comment check runs before the state check", func(t *testing.T) {
		in := pendingRecord()
		in.State = model.ApprovalApproved

		_, err := Reject(in, "reviewer-1", "", now)
		assert.ErrorIs(t, err, ErrCommentRequired)
	})

	t.Run("decided records are terminal", func(t *testing.T) {
		for _, state := range []model.ApprovalState{model.ApprovalApproved, model.ApprovalRejected} {
			in := pendingRecord()
			in.State = state

			out, err := Reject(in, "reviewer-2", "changed my mind", now)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, in, out)
		}
	})
}

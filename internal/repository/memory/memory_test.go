package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"materialhub/internal/model"
	"materialhub/internal/repository"
)

var testKey = model.SlotKey{Platform: model.PlatformWebBrand, Slot: "logo"}

func newVersion(key model.SlotKey, checksum string) repository.NewVersion {
	return repository.NewVersion{
		SlotKey:    key,
		ContentRef: "materials/" + string(key.Platform) + "/" + key.Slot + "/" + checksum + ".png",
		Checksum:   checksum,
		Filename:   "logo.png",
		Format:     model.FormatPNG,
		ByteSize:   128,
		Width:      482,
		Height:     108,
		HasAlpha:   true,
		UploaderID: "uploader-1",
	}
}

func TestAppendAssignsSequences(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for i := 1; i <= 3; i++ {
		v, err := s.Append(ctx, newVersion(testKey, fmt.Sprintf("sum-%d", i)))
		require.NoError(t, err)
		assert.Equal(t, i, v.SequenceNumber)
		assert.Equal(t, model.ApprovalPending, v.Status)
		assert.False(t, v.CreatedAt.IsZero())
	}

	// A different slot numbers independently.
	other := model.SlotKey{Platform: model.PlatformWebBrand, Slot: "splash"}
	v, err := s.Append(ctx, newVersion(other, "sum-x"))
	require.NoError(t, err)
	assert.Equal(t, 1, v.SequenceNumber)
}

func TestAppendConcurrentIsGapless(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	const n = 32
	seqs := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := s.Append(ctx, newVersion(testKey, fmt.Sprintf("sum-%d", i)))
			if assert.NoError(t, err) {
				seqs[i] = v.SequenceNumber
			}
		}(i)
	}
	wg.Wait()

	sort.Ints(seqs)
	for i, seq := range seqs {
		assert.Equal(t, i+1, seq, "sequence numbers must be gapless and unique")
	}

	versions, err := s.ListVersions(ctx, testKey)
	require.NoError(t, err)
	assert.Len(t, versions, n)
}

func TestListAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.Append(ctx, newVersion(testKey, "sum-1"))
	require.NoError(t, err)
	_, err = s.Append(ctx, newVersion(testKey, "sum-2"))
	require.NoError(t, err)

	t.Run("list preserves append order", func(t *testing.T) {
		versions, err := s.ListVersions(ctx, testKey)
		require.NoError(t, err)
		require.Len(t, versions, 2)
		assert.Equal(t, "sum-1", versions[0].Checksum)
		assert.Equal(t, "sum-2", versions[1].Checksum)
	})

	t.Run("list of untouched slot is empty", func(t *testing.T) {
		versions, err := s.ListVersions(ctx, model.SlotKey{Platform: model.PlatformLGWebOS, Slot: "icon_80"})
		require.NoError(t, err)
		assert.Empty(t, versions)
	})

	t.Run("get by sequence", func(t *testing.T) {
		v, err := s.GetVersion(ctx, testKey, 2)
		require.NoError(t, err)
		assert.Equal(t, "sum-2", v.Checksum)
	})

	t.Run("get unknown sequence", func(t *testing.T) {
		_, err := s.GetVersion(ctx, testKey, 99)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		_, err = s.GetVersion(ctx, testKey, 0)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("approval record created alongside the version", func(t *testing.T) {
		rec, err := s.GetApproval(ctx, testKey, 1)
		require.NoError(t, err)
		assert.Equal(t, model.ApprovalPending, rec.State)
	})
}

func TestSaveDecision(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	decided := func(seq int, state model.ApprovalState) model.ApprovalRecord {
		return model.ApprovalRecord{
			SlotKey:        testKey,
			SequenceNumber: seq,
			State:          state,
			ReviewerID:     "reviewer-1",
			DecidedAt:      &now,
		}
	}

	t.Run("approval promotes when asked", func(t *testing.T) {
		s := NewStore()
		_, err := s.Append(ctx, newVersion(testKey, "sum-1"))
		require.NoError(t, err)

		require.NoError(t, s.SaveDecision(ctx, decided(1, model.ApprovalApproved), true))

		cur, err := s.GetCurrent(ctx, testKey)
		require.NoError(t, err)
		assert.Equal(t, 1, cur.SequenceNumber)
		// The version row mirrors the decision.
		assert.Equal(t, model.ApprovalApproved, cur.Status)
	})

	t.Run("rejection never promotes", func(t *testing.T) {
		s := NewStore()
		_, err := s.Append(ctx, newVersion(testKey, "sum-1"))
		require.NoError(t, err)

		require.NoError(t, s.SaveDecision(ctx, decided(1, model.ApprovalRejected), false))

		_, err = s.GetCurrent(ctx, testKey)
		assert.ErrorIs(t, err, repository.ErrNoneYet)

		v, err := s.GetVersion(ctx, testKey, 1)
		require.NoError(t, err)
		assert.Equal(t, model.ApprovalRejected, v.Status)
	})

	t.Run("second decision conflicts", func(t *testing.T) {
		s := NewStore()
		_, err := s.Append(ctx, newVersion(testKey, "sum-1"))
		require.NoError(t, err)

		require.NoError(t, s.SaveDecision(ctx, decided(1, model.ApprovalApproved), true))
		err = s.SaveDecision(ctx, decided(1, model.ApprovalRejected), false)
		assert.ErrorIs(t, err, repository.ErrConcurrencyConflict)
	})

	t.Run("unknown sequence", func(t *testing.T) {
		s := NewStore()
		err := s.SaveDecision(ctx, decided(7, model.ApprovalApproved), true)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestRollbackAndCurrent(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	setup := func(t *testing.T) *Store {
		s := NewStore()
		for i := 1; i <= 3; i++ {
			_, err := s.Append(ctx, newVersion(testKey, fmt.Sprintf("sum-%d", i)))
			require.NoError(t, err)
		}
		require.NoError(t, s.SaveDecision(ctx, model.ApprovalRecord{
			SlotKey: testKey, SequenceNumber: 3, State: model.ApprovalApproved, DecidedAt: &now,
		}, true))
		return s
	}

	t.Run("fresh slot has no current version", func(t *testing.T) {
		s := NewStore()
		_, err := s.GetCurrent(ctx, testKey)
		assert.ErrorIs(t, err, repository.ErrNoneYet)
	})

	t.Run("rollback repoints current", func(t *testing.T) {
		s := setup(t)
		require.NoError(t, s.Rollback(ctx, testKey, 1))

		cur, err := s.GetCurrent(ctx, testKey)
		require.NoError(t, err)
		assert.Equal(t, 1, cur.SequenceNumber)

		// History is untouched.
		versions, err := s.ListVersions(ctx, testKey)
		require.NoError(t, err)
		assert.Len(t, versions, 3)
	})

	t.Run("rollback to a missing version leaves current alone", func(t *testing.T) {
		s := setup(t)
		err := s.Rollback(ctx, testKey, 9)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		cur, err := s.GetCurrent(ctx, testKey)
		require.NoError(t, err)
		assert.Equal(t, 3, cur.SequenceNumber)
	})
}

package memory

import (
	"context"
	"sync"
	"time"

	"materialhub/internal/model"
	"materialhub/internal/repository"
)

// Store is an in-memory VersionStore. Each slot is an independent arena
// guarded by its own mutex, so cross-slot operations never contend and
// same-slot writes are fully serialized — it can never report
// ErrConcurrencyConflict.
type Store struct {
	mu    sync.RWMutex
	slots map[model.SlotKey]*slotArena
}

type slotArena struct {
	mu        sync.Mutex
	versions  []model.MaterialVersion
	approvals map[int]model.ApprovalRecord
	current   int // sequence number, 0 = none yet
}

func NewStore() *Store {
	return &Store{slots: make(map[model.SlotKey]*slotArena)}
}

var _ repository.VersionStore = (*Store)(nil)

func (s *Store) arena(key model.SlotKey) *slotArena {
	s.mu.RLock()
	a, ok := s.slots[key]
	s.mu.RUnlock()
	if ok {
		return a
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok = s.slots[key]; !ok {
		a = &slotArena{approvals: make(map[int]model.ApprovalRecord)}
		s.slots[key] = a
	}
	return a
}

func (s *Store) Append(_ context.Context, nv repository.NewVersion) (*model.MaterialVersion, error) {
	a := s.arena(nv.SlotKey)
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now().UTC()
	v := model.MaterialVersion{
		SlotKey:        nv.SlotKey,
		SequenceNumber: len(a.versions) + 1,
		ContentRef:     nv.ContentRef,
		Checksum:       nv.Checksum,
		Filename:       nv.Filename,
		Format:         nv.Format,
		ByteSize:       nv.ByteSize,
		Width:          nv.Width,
		Height:         nv.Height,
		HasAlpha:       nv.HasAlpha,
		UploaderID:     nv.UploaderID,
		Status:         model.ApprovalPending,
		CreatedAt:      now,
	}
	a.versions = append(a.versions, v)
	a.approvals[v.SequenceNumber] = model.ApprovalRecord{
		SlotKey:        nv.SlotKey,
		SequenceNumber: v.SequenceNumber,
		State:          model.ApprovalPending,
		CreatedAt:      now,
	}
	return &v, nil
}

func (s *Store) ListVersions(_ context.Context, key model.SlotKey) ([]model.MaterialVersion, error) {
	a := s.arena(key)
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.MaterialVersion, len(a.versions))
	copy(out, a.versions)
	return out, nil
}

func (s *Store) GetVersion(_ context.Context, key model.SlotKey, seq int) (*model.MaterialVersion, error) {
	a := s.arena(key)
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.version(seq)
}

// version requires a.mu held.
func (a *slotArena) version(seq int) (*model.MaterialVersion, error) {
	if seq < 1 || seq > len(a.versions) {
		return nil, repository.ErrNotFound
	}
	v := a.versions[seq-1]
	return &v, nil
}

func (s *Store) GetApproval(_ context.Context, key model.SlotKey, seq int) (*model.ApprovalRecord, error) {
	a := s.arena(key)
	a.mu.Lock()
	defer a.mu.Unlock()
	rec, ok := a.approvals[seq]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (s *Store) SaveDecision(_ context.Context, rec model.ApprovalRecord, promote bool) error {
	a := s.arena(rec.SlotKey)
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, ok := a.approvals[rec.SequenceNumber]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.State != model.ApprovalPending {
		return repository.ErrConcurrencyConflict
	}
	a.approvals[rec.SequenceNumber] = rec
	a.versions[rec.SequenceNumber-1].Status = rec.State
	if promote {
		a.current = rec.SequenceNumber
	}
	return nil
}

func (s *Store) Rollback(_ context.Context, key model.SlotKey, seq int) error {
	a := s.arena(key)
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, err := a.version(seq); err != nil {
		return err
	}
	a.current = seq
	return nil
}

func (s *Store) GetCurrent(_ context.Context, key model.SlotKey) (*model.MaterialVersion, error) {
	a := s.arena(key)
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == 0 {
		return nil, repository.ErrNoneYet
	}
	return a.version(a.current)
}

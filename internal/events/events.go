package events

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"materialhub/internal/model"
	"materialhub/internal/validate"
)

// Sink receives one structured event per engine operation: every Validate
// call and every Approve/Reject/Rollback. Persistence and delivery are the
// collaborator's concern; the engine only emits.
type Sink interface {
	MaterialValidated(key model.SlotKey, uploaderID string, verdict validate.Verdict)
	VersionApproved(key model.SlotKey, sequenceNumber int, reviewerID string)
	VersionRejected(key model.SlotKey, sequenceNumber int, reviewerID, comment string)
	SlotRolledBack(key model.SlotKey, sequenceNumber int, actorID string)
	MaterialDownloaded(key model.SlotKey, sequenceNumber int, actorID string)
}

// LogSink writes events as one JSON object per line.
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink creates a sink writing to w; nil means stdout.
func NewLogSink(w io.Writer) *LogSink {
	if w == nil {
		w = os.Stdout
	}
	log := zerolog.New(w).With().
		Timestamp().
		Str("service", "materialhub").
		Logger()
	return &LogSink{log: log}
}

func (s *LogSink) MaterialValidated(key model.SlotKey, uploaderID string, verdict validate.Verdict) {
	codes := verdict.Codes()
	strs := make([]string, len(codes))
	for i, c := range codes {
		strs[i] = string(c)
	}
	s.log.Info().
		Str("event", "material_validated").
		Str("platform", string(key.Platform)).
		Str("slot", key.Slot).
		Str("uploader_id", uploaderID).
		Bool("accepted", verdict.Accepted).
		Strs("violation_codes", strs).
		Msg("material validated")
}

func (s *LogSink) VersionApproved(key model.SlotKey, sequenceNumber int, reviewerID string) {
	s.decision("version_approved", key, sequenceNumber, reviewerID, "")
}

func (s *LogSink) VersionRejected(key model.SlotKey, sequenceNumber int, reviewerID, comment string) {
	s.decision("version_rejected", key, sequenceNumber, reviewerID, comment)
}

func (s *LogSink) SlotRolledBack(key model.SlotKey, sequenceNumber int, actorID string) {
	s.log.Info().
		Str("event", "slot_rolled_back").
		Str("platform", string(key.Platform)).
		Str("slot", key.Slot).
		Int("sequence_number", sequenceNumber).
		Str("actor_id", actorID).
		Msg("slot rolled back")
}

func (s *LogSink) MaterialDownloaded(key model.SlotKey, sequenceNumber int, actorID string) {
	s.log.Info().
		Str("event", "material_downloaded").
		Str("platform", string(key.Platform)).
		Str("slot", key.Slot).
		Int("sequence_number", sequenceNumber).
		Str("actor_id", actorID).
		Msg("material downloaded")
}

func (s *LogSink) decision(event string, key model.SlotKey, seq int, reviewerID, comment string) {
	ev := s.log.Info().
		Str("event", event).
		Str("platform", string(key.Platform)).
		Str("slot", key.Slot).
		Int("sequence_number", seq).
		Str("reviewer_id", reviewerID)
	if comment != "" {
		ev = ev.Str("comment", comment)
	}
	ev.Msg("review decision recorded")
}

// Nop discards every event. Useful where a sink is mandatory but output is not.
type Nop struct{}

func (Nop) MaterialValidated(model.SlotKey, string, validate.Verdict) {}
func (Nop) VersionApproved(model.SlotKey, int, string)                {}
func (Nop) VersionRejected(model.SlotKey, int, string, string)        {}
func (Nop) SlotRolledBack(model.SlotKey, int, string)                 {}
func (Nop) MaterialDownloaded(model.SlotKey, int, string)             {}

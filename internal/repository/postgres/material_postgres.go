package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"materialhub/internal/model"
	"materialhub/internal/repository"
)

// MaterialPostgres is the PostgreSQL implementation of repository.VersionStore.
// Per-slot serialization rides on a row lock held on the material_slots row
// for the duration of each writing transaction; the unique key on
// (platform, slot, sequence_number) is the backstop.
type MaterialPostgres struct {
	db *sql.DB
}

func NewMaterialPostgres(db *sql.DB) *MaterialPostgres {
	return &MaterialPostgres{db: db}
}

var _ repository.VersionStore = (*MaterialPostgres)(nil)

const versionColumns = `platform, slot, sequence_number, content_ref, checksum, filename,
	format, byte_size, width, height, has_alpha, uploader_id, status, created_at`

func (r *MaterialPostgres) Append(ctx context.Context, nv repository.NewVersion) (*model.MaterialVersion, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const qEnsure = `
		INSERT INTO material_slots (platform, slot)
		VALUES ($1, $2)
		ON CONFLICT (platform, slot) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, qEnsure, nv.SlotKey.Platform, nv.SlotKey.Slot); err != nil {
		return nil, err
	}

	// Lock the slot row; concurrent appends for the same slot queue here.
	const qLock = `
		SELECT last_sequence FROM material_slots
		WHERE platform = $1 AND slot = $2
		FOR UPDATE
	`
	var last int
	if err := tx.QueryRowContext(ctx, qLock, nv.SlotKey.Platform, nv.SlotKey.Slot).Scan(&last); err != nil {
		return nil, err
	}
	next := last + 1

	const qBump = `
		UPDATE material_slots SET last_sequence = $3
		WHERE platform = $1 AND slot = $2
	`
	if _, err := tx.ExecContext(ctx, qBump, nv.SlotKey.Platform, nv.SlotKey.Slot, next); err != nil {
		return nil, err
	}

	const qInsert = `
		INSERT INTO material_versions (` + versionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'pending', now())
		RETURNING created_at
	`
	out := model.MaterialVersion{
		SlotKey:        nv.SlotKey,
		SequenceNumber: next,
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
	}
	err = tx.QueryRowContext(ctx, qInsert,
		nv.SlotKey.Platform, nv.SlotKey.Slot, next,
		nv.ContentRef, nv.Checksum, nv.Filename,
		nv.Format, nv.ByteSize, nv.Width, nv.Height, nv.HasAlpha,
		nv.UploaderID,
	).Scan(&out.CreatedAt)
	if err != nil {
		return nil, translateConflict(err)
	}

	const qApproval = `
		INSERT INTO material_approvals (platform, slot, sequence_number, state, created_at)
		VALUES ($1, $2, $3, 'pending', now())
	`
	if _, err := tx.ExecContext(ctx, qApproval, nv.SlotKey.Platform, nv.SlotKey.Slot, next); err != nil {
		return nil, translateConflict(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, translateConflict(err)
	}
	return &out, nil
}

func (r *MaterialPostgres) ListVersions(ctx context.Context, key model.SlotKey) ([]model.MaterialVersion, error) {
	const q = `
		SELECT ` + versionColumns + `
		FROM material_versions
		WHERE platform = $1 AND slot = $2
		ORDER BY sequence_number ASC
	`
	rows, err := r.db.QueryContext(ctx, q, key.Platform, key.Slot)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make([]model.MaterialVersion, 0)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, *v)
	}
	return versions, rows.Err()
}

func (r *MaterialPostgres) GetVersion(ctx context.Context, key model.SlotKey, seq int) (*model.MaterialVersion, error) {
	const q = `
		SELECT ` + versionColumns + `
		FROM material_versions
		WHERE platform = $1 AND slot = $2 AND sequence_number = $3
	`
	v, err := scanVersion(r.db.QueryRowContext(ctx, q, key.Platform, key.Slot, seq))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return v, err
}

func (r *MaterialPostgres) GetApproval(ctx context.Context, key model.SlotKey, seq int) (*model.ApprovalRecord, error) {
	const q = `
		SELECT platform, slot, sequence_number, state, reviewer_id, comment, decided_at, created_at
		FROM material_approvals
		WHERE platform = $1 AND slot = $2 AND sequence_number = $3
	`
	var (
		rec      model.ApprovalRecord
		reviewer sql.NullString
		comment  sql.NullString
		decided  sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, key.Platform, key.Slot, seq).Scan(
		&rec.SlotKey.Platform, &rec.SlotKey.Slot, &rec.SequenceNumber,
		&rec.State, &reviewer, &comment, &decided, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rec.ReviewerID = reviewer.String
	rec.Comment = comment.String
	if decided.Valid {
		t := decided.Time
		rec.DecidedAt = &t
	}
	return &rec, nil
}

func (r *MaterialPostgres) SaveDecision(ctx context.Context, rec model.ApprovalRecord, promote bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The state guard makes a lost race visible: zero rows means another
	// reviewer decided between our read and this write.
	const qDecide = `
		UPDATE material_approvals
		SET state = $4, reviewer_id = $5, comment = $6, decided_at = $7
		WHERE platform = $1 AND slot = $2 AND sequence_number = $3 AND state = 'pending'
	`
	res, err := tx.ExecContext(ctx, qDecide,
		rec.SlotKey.Platform, rec.SlotKey.Slot, rec.SequenceNumber,
		rec.State, rec.ReviewerID, rec.Comment, rec.DecidedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("decide %s seq %d: %w", rec.SlotKey, rec.SequenceNumber, repository.ErrConcurrencyConflict)
	}

	const qStatus = `
		UPDATE material_versions SET status = $4
		WHERE platform = $1 AND slot = $2 AND sequence_number = $3
	`
	if _, err := tx.ExecContext(ctx, qStatus,
		rec.SlotKey.Platform, rec.SlotKey.Slot, rec.SequenceNumber, rec.State); err != nil {
		return err
	}

	if promote {
		const qPromote = `
			UPDATE material_slots SET current_sequence = $3
			WHERE platform = $1 AND slot = $2
		`
		if _, err := tx.ExecContext(ctx, qPromote,
			rec.SlotKey.Platform, rec.SlotKey.Slot, rec.SequenceNumber); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *MaterialPostgres) Rollback(ctx context.Context, key model.SlotKey, seq int) error {
	const q = `
		UPDATE material_slots SET current_sequence = $3
		WHERE platform = $1 AND slot = $2
		  AND EXISTS (
			SELECT 1 FROM material_versions
			WHERE platform = $1 AND slot = $2 AND sequence_number = $3
		  )
	`
	res, err := r.db.ExecContext(ctx, q, key.Platform, key.Slot, seq)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("rollback %s to seq %d: %w", key, seq, repository.ErrNotFound)
	}
	return nil
}

func (r *MaterialPostgres) GetCurrent(ctx context.Context, key model.SlotKey) (*model.MaterialVersion, error) {
	const q = `
		SELECT v.platform, v.slot, v.sequence_number, v.content_ref, v.checksum, v.filename,
			v.format, v.byte_size, v.width, v.height, v.has_alpha, v.uploader_id, v.status, v.created_at
		FROM material_slots s
		JOIN material_versions v
		  ON v.platform = s.platform AND v.slot = s.slot AND v.sequence_number = s.current_sequence
		WHERE s.platform = $1 AND s.slot = $2
	`
	v, err := scanVersion(r.db.QueryRowContext(ctx, q, key.Platform, key.Slot))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNoneYet
	}
	return v, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVersion(row rowScanner) (*model.MaterialVersion, error) {
	var v model.MaterialVersion
	err := row.Scan(
		&v.SlotKey.Platform, &v.SlotKey.Slot, &v.SequenceNumber,
		&v.ContentRef, &v.Checksum, &v.Filename,
		&v.Format, &v.ByteSize, &v.Width, &v.Height, &v.HasAlpha,
		&v.UploaderID, &v.Status, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// translateConflict maps a unique-key violation on the per-slot sequence to
// the retryable conflict error.
func translateConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%v: %w", err, repository.ErrConcurrencyConflict)
	}
	return err
}

// Package persistence archives runs and day records in Postgres. It is an
// observer of the run: the day loop never waits on it and never reads
// back through it.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"craft_market/internal/domain"
	"craft_market/internal/domain/entity"
	"craft_market/pkg/errcodes"
)

// ArchivedRun is a run's archival header row.
type ArchivedRun struct {
	ID           string
	Seed         string
	Days         int
	Participants int
	Completed    bool
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

type RunRepository struct {
	db *sqlx.DB
}

func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) SaveRun(ctx context.Context, runID, seed string, days, participants int) error {
	query := `
		INSERT INTO runs (id, seed, days, participants, completed, created_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW())
		ON CONFLICT (id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, runID, seed, days, participants); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to save run")
	}

	return nil
}

// SaveDayRecord stores one immutable day record. Records are append-only,
// so a duplicate day is dropped rather than revised.
func (r *RunRepository) SaveDayRecord(ctx context.Context, runID string, day int, record entity.DayRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to encode day record")
	}

	query := `
		INSERT INTO day_records (run_id, day, record, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (run_id, day) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, runID, day, payload); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to save day record")
	}

	return nil
}

func (r *RunRepository) CompleteRun(ctx context.Context, runID string) error {
	query := `
		UPDATE runs
		SET completed = TRUE, completed_at = NOW()
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, runID)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to complete run")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to complete run")
	}
	if affected == 0 {
		return domain.NewError(errcodes.RunNotFound, fmt.Sprintf("run %s not found", runID))
	}

	return nil
}

func (r *RunRepository) GetRun(ctx context.Context, runID string) (*ArchivedRun, error) {
	query := `
		SELECT id, seed, days, participants, completed, created_at, completed_at
		FROM runs
		WHERE id = $1`

	var schema runSchema
	if err := r.db.GetContext(ctx, &schema, query, runID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.RunNotFound, fmt.Sprintf("run %s not found", runID))
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get run")
	}

	return schema.toDomain(), nil
}

func (r *RunRepository) GetDayRecord(ctx context.Context, runID string, day int) (entity.DayRecord, error) {
	query := `
		SELECT run_id, day, record, created_at
		FROM day_records
		WHERE run_id = $1 AND day = $2`

	var schema dayRecordSchema
	if err := r.db.GetContext(ctx, &schema, query, runID, day); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.DayRecord{}, domain.NewError(errcodes.DayRecordNotFound,
				fmt.Sprintf("day %d of run %s not found", day, runID))
		}
		return entity.DayRecord{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get day record")
	}

	record, err := schema.toDomain()
	if err != nil {
		return entity.DayRecord{}, domain.WrapError(err, errcodes.InternalServerError, "failed to decode day record")
	}

	return record, nil
}

func (r *RunRepository) ListDayRecords(ctx context.Context, runID string) ([]entity.DayRecord, error) {
	query := `
		SELECT run_id, day, record, created_at
		FROM day_records
		WHERE run_id = $1
		ORDER BY day`

	var schemas []dayRecordSchema
	if err := r.db.SelectContext(ctx, &schemas, query, runID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list day records")
	}

	records := make([]entity.DayRecord, 0, len(schemas))
	for i := range schemas {
		record, err := schemas[i].toDomain()
		if err != nil {
			return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to decode day record")
		}
		records = append(records, record)
	}

	return records, nil
}

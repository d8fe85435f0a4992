package persistence

import (
	"database/sql"
	"time"

	jsoniter "github.com/json-iterator/go"

	"craft_market/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

type runSchema struct {
	ID           string       `db:"id"`
	Seed         string       `db:"seed"`
	Days         int          `db:"days"`
	Participants int          `db:"participants"`
	Completed    bool         `db:"completed"`
	CreatedAt    time.Time    `db:"created_at"`
	CompletedAt  sql.NullTime `db:"completed_at"`
}

func (s *runSchema) toDomain() *ArchivedRun {
	run := &ArchivedRun{
		ID:           s.ID,
		Seed:         s.Seed,
		Days:         s.Days,
		Participants: s.Participants,
		Completed:    s.Completed,
		CreatedAt:    s.CreatedAt,
	}
	if s.CompletedAt.Valid {
		run.CompletedAt = &s.CompletedAt.Time
	}
	return run
}

type dayRecordSchema struct {
	RunID     string    `db:"run_id"`
	Day       int       `db:"day"`
	Record    []byte    `db:"record"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *dayRecordSchema) toDomain() (entity.DayRecord, error) {
	var record entity.DayRecord
	if err := json.Unmarshal(s.Record, &record); err != nil {
		return entity.DayRecord{}, err
	}
	return record, nil
}

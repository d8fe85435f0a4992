package worker

import (
	"context"
	"log/slog"

	"craft_market/internal/domain/entity"
	"craft_market/pkg/logx"
)

// RunArchive persists run history. The run core never depends on it; the
// archiver is just another stream observer.
type RunArchive interface {
	SaveRun(ctx context.Context, runID, seed string, days, participants int) error
	SaveDayRecord(ctx context.Context, runID string, day int, record entity.DayRecord) error
	CompleteRun(ctx context.Context, runID string) error
}

// Archiver copies a run's snapshots into the archive as they are
// published. Persistence faults are logged and skipped so the run is
// never slowed down or failed by storage.
type Archiver struct {
	archive RunArchive
}

func NewArchiver(archive RunArchive) *Archiver {
	return &Archiver{archive: archive}
}

// Watch subscribes to the run's stream and persists every completed day.
// It returns when the stream closes or the context is done.
func (a *Archiver) Watch(ctx context.Context, run *Run) {
	states, cancel := run.Stream.Subscribe()
	defer cancel()

	if err := a.archive.SaveRun(ctx, run.ID, run.Spec.Seed, run.Spec.Days, len(run.Spec.Providers)); err != nil {
		logger(ctx).Error(
			"archive.SaveRun",
			slog.String(logx.FieldRunID, run.ID),
			logx.Error(err),
		)
	}

	archivedThrough := 0

	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-states:
			if !ok {
				return
			}

			for _, record := range state.Records {
				if record.Day <= archivedThrough {
					continue
				}

				if err := a.archive.SaveDayRecord(ctx, run.ID, record.Day, record); err != nil {
					logger(ctx).Error(
						"archive.SaveDayRecord",
						slog.String(logx.FieldRunID, run.ID),
						slog.Int(logx.FieldDay, record.Day),
						logx.Error(err),
					)
					continue
				}

				archivedThrough = record.Day
			}

			if state.Completed {
				if err := a.archive.CompleteRun(ctx, run.ID); err != nil {
					logger(ctx).Error(
						"archive.CompleteRun",
						slog.String(logx.FieldRunID, run.ID),
						logx.Error(err),
					)
				}
			}
		}
	}
}

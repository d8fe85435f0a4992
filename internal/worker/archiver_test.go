package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"craft_market/internal/domain/entity"
	"craft_market/internal/infrastructure/decision"
	"craft_market/internal/worker"
)

type memoryArchive struct {
	mu        sync.Mutex
	runs      map[string]bool
	records   map[string][]int
	completed map[string]bool
}

func newMemoryArchive() *memoryArchive {
	return &memoryArchive{
		runs:      make(map[string]bool),
		records:   make(map[string][]int),
		completed: make(map[string]bool),
	}
}

func (m *memoryArchive) SaveRun(_ context.Context, runID, _ string, _, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[runID] = true
	return nil
}

func (m *memoryArchive) SaveDayRecord(_ context.Context, runID string, day int, _ entity.DayRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[runID] = append(m.records[runID], day)
	return nil
}

func (m *memoryArchive) CompleteRun(_ context.Context, runID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed[runID] = true
	return nil
}

func (m *memoryArchive) snapshot(runID string) (bool, []int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	days := append([]int(nil), m.records[runID]...)
	return m.runs[runID], days, m.completed[runID]
}

func TestArchiverPersistsEveryDayOnce(t *testing.T) {
	rq := require.New(t)

	archive := newMemoryArchive()

	manager := testManager()
	manager.OnRunStarted(worker.NewArchiver(archive).Watch)

	run, err := manager.StartRun(context.Background(), worker.RunSpec{
		Seed:             "alpha",
		Days:             4,
		StartingCurrency: 100,
		Providers:        []string{decision.KindScripted},
	})
	rq.NoError(err)

	rq.Eventually(func() bool {
		_, _, completed := archive.snapshot(run.ID)
		return completed
	}, 5*time.Second, 10*time.Millisecond)

	saved, days, _ := archive.snapshot(run.ID)
	rq.True(saved)
	rq.Equal([]int{1, 2, 3, 4}, days)
}

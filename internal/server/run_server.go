package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"craft_market/internal/domain/entity"
	"craft_market/internal/worker"
	"craft_market/pkg/httpx/reply"
	"craft_market/pkg/httpx/req"
	"craft_market/pkg/rest"
)

type runManager interface {
	StartRun(ctx context.Context, spec worker.RunSpec) (*worker.Run, error)
	Get(runID string) (*worker.Run, error)
	SubmitDecision(runID string, index int, raw []byte) error
}

type RunServer struct {
	manager runManager

	// Completed day records never change, so they are cached once
	// rendered.
	dayCache *cache.Cache
}

func NewRunServer(manager runManager) RunServer {
	return RunServer{
		manager:  manager,
		dayCache: cache.New(time.Hour, 10*time.Minute),
	}
}

func (s RunServer) postV1Run(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.RunRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	run, err := s.manager.StartRun(ctx, worker.RunSpec{
		Seed:             request.Seed,
		Days:             request.Days,
		StartingCurrency: request.StartingCurrency,
		Providers:        request.Participants,
	})
	if err != nil {
		return httpError(fmt.Errorf("manager.StartRun: %w", err))
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTRun(run))

	return nil
}

func (s RunServer) getV1Run(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	run, err := s.manager.Get(r.PathValue("id"))
	if err != nil {
		return httpError(fmt.Errorf("manager.Get: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTRun(run))

	return nil
}

func (s RunServer) getV1RunState(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	run, err := s.manager.Get(r.PathValue("id"))
	if err != nil {
		return httpError(fmt.Errorf("manager.Get: %w", err))
	}

	state, ok := run.Stream.Latest()
	if !ok {
		return httpError(errNoSnapshot(run.ID))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTGameState(state))

	return nil
}

func (s RunServer) getV1RunSchedule(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	run, err := s.manager.Get(r.PathValue("id"))
	if err != nil {
		return httpError(fmt.Errorf("manager.Get: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSchedule(run.Schedule))

	return nil
}

func (s RunServer) getV1RunDay(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	runID := r.PathValue("id")

	day, err := strconv.Atoi(r.PathValue("day"))
	if err != nil {
		return httpError(errInvalidDay(r.PathValue("day")))
	}

	cacheKey := runID + "/" + strconv.Itoa(day)
	if cached, ok := s.dayCache.Get(cacheKey); ok {
		reply.JSON(ctx, w, http.StatusOK, cached.(rest.DayRecord)) //nolint:forcetypeassert
		return nil
	}

	run, err := s.manager.Get(runID)
	if err != nil {
		return httpError(fmt.Errorf("manager.Get: %w", err))
	}

	record, ok := findDayRecord(run.Stream.States(), day)
	if !ok {
		return httpError(errDayNotRecorded(runID, day))
	}

	restRecord := newRESTDayRecord(record)
	s.dayCache.SetDefault(cacheKey, restRecord)

	reply.JSON(ctx, w, http.StatusOK, restRecord)

	return nil
}

func (s RunServer) postV1RunDecision(w http.ResponseWriter, r *http.Request) error {
	runID := r.PathValue("id")

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return httpError(errInvalidParticipant(r.PathValue("index")))
	}

	var request rest.Decision
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	raw, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := s.manager.SubmitDecision(runID, index, raw); err != nil {
		return httpError(fmt.Errorf("manager.SubmitDecision: %w", err))
	}

	reply.Accepted(w)

	return nil
}

// findDayRecord walks snapshots newest first; records are append-only so
// the latest snapshot holds every completed day.
func findDayRecord(states []entity.GameState, day int) (entity.DayRecord, bool) {
	if len(states) == 0 {
		return entity.DayRecord{}, false
	}

	latest := states[len(states)-1]
	for _, record := range latest.Records {
		if record.Day == day {
			return record, true
		}
	}

	return entity.DayRecord{}, false
}

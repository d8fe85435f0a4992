package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"

	"craft_market/internal/domain"
	"craft_market/internal/domain/entity"
	"craft_market/internal/domain/service/economy"
	"craft_market/internal/domain/service/stream"
	"craft_market/internal/infrastructure/decision"
	"craft_market/pkg/contextx"
	"craft_market/pkg/errcodes"
	"craft_market/pkg/logx"
)

// RunSpec is what a caller asks for when starting a run. Economy tuning
// beyond seed and horizon comes from the manager's defaults.
type RunSpec struct {
	Seed             string
	Days             int
	StartingCurrency int
	// Providers holds one decision provider kind per participant.
	Providers []string
}

// Run is a live or completed run held by the manager.
type Run struct {
	ID        string
	Spec      RunSpec
	Schedule  entity.EconomySchedule
	Stream    *stream.Stream
	mailboxes map[int]*decision.Mailbox
}

// Mailbox returns the submission mailbox of a human participant.
func (r *Run) Mailbox(index int) (*decision.Mailbox, error) {
	if index < 0 || index >= len(r.Spec.Providers) {
		return nil, domain.NewError(errcodes.InvalidParticipant,
			fmt.Sprintf("participant index %d out of range", index))
	}

	mb, ok := r.mailboxes[index]
	if !ok {
		return nil, domain.NewError(errcodes.ParticipantNotHuman,
			fmt.Sprintf("participant %d is not a human participant", index))
	}

	return mb, nil
}

// ManagerConfig carries the run defaults shared by every run the manager
// starts.
type ManagerConfig struct {
	Economy           economy.Params
	DecisionTimeout   time.Duration
	HumanTimeout      time.Duration
	LLM               decision.LLMConfig
	MaxConcurrentRuns int
}

// Manager owns the run registry. Each run is fully isolated: its own
// schedule, inventories, stream and providers.
type Manager struct {
	cfg     ManagerConfig
	catalog entity.Catalog

	mu   sync.RWMutex
	runs map[string]*Run

	onRunStarted func(ctx context.Context, run *Run)
}

func NewManager(cfg ManagerConfig, catalog entity.Catalog) *Manager {
	if cfg.MaxConcurrentRuns <= 0 {
		cfg.MaxConcurrentRuns = 16
	}

	return &Manager{
		cfg:     cfg,
		catalog: catalog,
		runs:    make(map[string]*Run),
	}
}

// OnRunStarted registers an observer invoked in its own goroutine for
// every run the manager starts. Stream replay means a late observer
// still sees every snapshot.
func (m *Manager) OnRunStarted(fn func(ctx context.Context, run *Run)) {
	m.onRunStarted = fn
}

// StartRun validates the run spec, generates the economy schedule and
// launches the run loop in the background. Configuration errors are fatal
// to the run before it starts.
func (m *Manager) StartRun(ctx context.Context, spec RunSpec) (*Run, error) {
	if len(spec.Providers) == 0 {
		return nil, domain.NewError(errcodes.InvalidRunConfig, "participant list is empty")
	}
	if spec.StartingCurrency < 0 {
		return nil, domain.NewError(errcodes.InvalidRunConfig, "negative starting currency")
	}

	params := m.cfg.Economy
	params.Seed = spec.Seed
	params.Days = spec.Days

	schedule, err := economy.Generate(m.catalog, params)
	if err != nil {
		return nil, fmt.Errorf("economy.Generate: %w", err)
	}

	deciders := make([]decision.Decider, len(spec.Providers))
	mailboxes := make(map[int]*decision.Mailbox)

	for i, kind := range spec.Providers {
		provider, mailbox, err := m.buildProvider(kind)
		if err != nil {
			return nil, err
		}

		timeout := m.cfg.DecisionTimeout
		if kind == decision.KindHuman {
			timeout = m.cfg.HumanTimeout
			mailboxes[i] = mailbox
		}

		deciders[i] = decision.WithTimeout(decision.NewDecider(provider, m.catalog), timeout)
	}

	runID := xid.New().String()
	st := stream.New(spec.Days + 1)

	orchestrator, err := NewOrchestrator(
		runID,
		m.catalog,
		schedule,
		deciders,
		spec.Providers,
		spec.StartingCurrency,
		st,
	)
	if err != nil {
		return nil, err
	}

	run := &Run{
		ID:        runID,
		Spec:      spec,
		Schedule:  schedule,
		Stream:    st,
		mailboxes: mailboxes,
	}

	m.mu.Lock()
	if m.liveRunsLocked() >= m.cfg.MaxConcurrentRuns {
		m.mu.Unlock()
		return nil, domain.NewError(errcodes.InvalidRunConfig, "run limit reached")
	}
	m.runs[runID] = run
	m.mu.Unlock()

	runCtx := contextx.WithRunID(context.WithoutCancel(ctx), contextx.RunID(runID))

	if m.onRunStarted != nil {
		go m.onRunStarted(runCtx, run)
	}

	go func() {
		if err := orchestrator.Run(runCtx); err != nil {
			logger(runCtx).Error(
				"run aborted",
				slog.String(logx.FieldRunID, runID),
				logx.Error(err),
			)
		}
	}()

	return run, nil
}

func (m *Manager) buildProvider(kind string) (decision.Provider, *decision.Mailbox, error) {
	switch kind {
	case decision.KindScripted:
		return decision.NewScripted(m.catalog), nil, nil
	case decision.KindLLM:
		if m.cfg.LLM.APIKey == "" {
			return nil, nil, domain.NewError(errcodes.InvalidRunConfig, "llm provider requested but no api key configured")
		}
		return decision.NewLLM(m.cfg.LLM), nil, nil
	case decision.KindHuman:
		mailbox := decision.NewMailbox()
		return decision.NewHuman(mailbox), mailbox, nil
	default:
		return nil, nil, domain.NewError(errcodes.UnknownProviderKind,
			fmt.Sprintf("unknown decision provider kind %q", kind))
	}
}

// liveRunsLocked counts runs whose stream has not closed yet. Completed
// runs stay in the registry for lookups but never count against the
// concurrency cap. Callers must hold m.mu.
func (m *Manager) liveRunsLocked() int {
	live := 0

	for _, run := range m.runs {
		if !run.Stream.Closed() {
			live++
		}
	}

	return live
}

// Get looks a run up by ID.
func (m *Manager) Get(runID string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[runID]
	if !ok {
		return nil, domain.NewError(errcodes.RunNotFound, fmt.Sprintf("run %s not found", runID))
	}

	return run, nil
}

// SubmitDecision routes a raw human decision to the participant's
// mailbox. Completed runs accept no further decisions.
func (m *Manager) SubmitDecision(runID string, index int, raw []byte) error {
	run, err := m.Get(runID)
	if err != nil {
		return err
	}

	if run.Stream.Closed() {
		return domain.NewError(errcodes.RunAlreadyCompleted, fmt.Sprintf("run %s is completed", runID))
	}

	mailbox, err := run.Mailbox(index)
	if err != nil {
		return err
	}

	return mailbox.Submit(raw)
}

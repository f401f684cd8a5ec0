package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/homework-bot/internal/domain/homework"
	"github.com/preston-bernstein/homework-bot/internal/logging"
	"github.com/preston-bernstein/homework-bot/internal/metrics"
	"github.com/preston-bernstein/homework-bot/internal/notifier"
	"github.com/preston-bernstein/homework-bot/internal/providers"
	"github.com/preston-bernstein/homework-bot/internal/store"
)

const (
	defaultInterval = 10 * time.Minute

	kindChange  = "change"
	kindFailure = "failure"
)

// Poller fetches homework statuses on an interval and notifies about changes.
type Poller struct {
	provider providers.HomeworkProvider
	notifier notifier.Notifier
	states   store.StateStore
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	// cycleMu serializes cycles; the fields below are owned by whoever holds it.
	cycleMu     sync.Mutex
	state       store.State
	lastFailure string

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	Tracked             int
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller. A nil states falls back to an in-memory store.
func New(provider providers.HomeworkProvider, n notifier.Notifier, states store.StateStore, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if states == nil {
		states = store.NewMemoryStore()
	}
	return &Poller{
		provider: provider,
		notifier: n,
		states:   states,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// Poll fetches everything updated since state.Cursor and diffs it against
// state.Seen. On failure the input state is returned untouched together with a
// *providers.FetchError. state itself is never mutated.
func (p *Poller) Poll(ctx context.Context, state store.State) (store.State, []homework.ChangeEvent, error) {
	if p.provider == nil {
		return state, nil, providers.NewFetchError("", providers.ErrProviderUnavailable)
	}
	batch, err := p.provider.FetchHomeworks(ctx, state.Cursor)
	if err != nil {
		return state, nil, providers.NewFetchError("", err)
	}

	seen, events := homework.Diff(state.Seen, batch.Homeworks)
	next := store.State{Seen: seen, Cursor: state.Cursor}
	if !batch.CurrentDate.IsZero() {
		next.Cursor = batch.CurrentDate
	}
	return next, events, nil
}

// Start loads persisted state and begins polling until the context is
// cancelled or Stop is called. A fresh state only reports changes made from now on.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		defer close(p.exited)
		p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))

		state, err := p.load(ctx)
		if err != nil {
			p.logError("poller state load failed", err)
		}
		if state.Cursor.IsZero() {
			state.Cursor = p.now().UTC()
		}
		p.cycleMu.Lock()
		p.state = state
		p.cycleMu.Unlock()
		p.setTracked(len(state.Seen))

		p.runCycle(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.ticker.C:
				p.runCycle(ctx)
			}
		}
	}()
}

// Stop halts the polling loop and waits for an in-flight cycle until ctx expires.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})

	p.startMu.Lock()
	started := p.started
	p.startMu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-p.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce runs a single cycle against the persisted state and returns the
// events it found. A zero cursor fetches the whole history.
func (p *Poller) RunOnce(ctx context.Context) ([]homework.ChangeEvent, error) {
	state, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	p.cycleMu.Lock()
	p.state = state
	p.cycleMu.Unlock()
	return p.cycle(ctx)
}

func (p *Poller) runCycle(ctx context.Context) {
	_, _ = p.cycle(ctx)
}

func (p *Poller) cycle(ctx context.Context) ([]homework.ChangeEvent, error) {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	start := p.now()
	logger := p.logger
	if logger != nil {
		logger = logger.With(logging.FieldCycleID, uuid.NewString())
	}
	ctx = logging.WithLogger(ctx, logger)
	p.recordAttempt(start)

	next, events, err := p.Poll(ctx, p.state)
	if err != nil {
		p.metrics.RecordPollerCycle(time.Since(start), 0, err)
		p.recordFailure(err, start)
		logging.Error(logger, "poll cycle failed", err,
			logging.FieldFailure, providers.FailureKind(err),
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
		p.reportFailure(ctx, logger, err)
		return nil, err
	}
	p.lastFailure = ""

	for _, ev := range events {
		logging.Info(logger, "homework status changed",
			logging.FieldHomeworkID, ev.ID,
			logging.FieldOldStatus, string(ev.Old),
			logging.FieldStatus, string(ev.New),
			logging.FieldReviewed, ev.New.Terminal(),
		)
		// Delivery failures do not roll the state back.
		_ = p.deliver(ctx, logger, kindChange, notifier.FormatChange(ev))
	}
	if len(events) == 0 {
		logging.Debug(logger, "no status changes")
	}

	p.state = next
	if saveErr := p.states.Save(ctx, next); saveErr != nil {
		logging.Error(logger, "poller state save failed", saveErr)
	}

	p.metrics.RecordPollerCycle(time.Since(start), len(events), nil)
	p.recordSuccess(start, len(next.Seen))
	logging.Info(logger, "poll cycle complete",
		logging.FieldCount, len(events),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return events, nil
}

// reportFailure sends the error to the chat unless a failure of the same kind
// was already delivered since the last successful cycle.
func (p *Poller) reportFailure(ctx context.Context, logger *slog.Logger, err error) {
	if ctx.Err() != nil {
		return
	}
	kind := providers.FailureKind(err)
	if kind == p.lastFailure {
		logging.Debug(logger, "failure already reported", logging.FieldFailure, kind)
		return
	}
	if p.deliver(ctx, logger, kindFailure, notifier.FormatFailure(err)) == nil {
		p.lastFailure = kind
	}
}

func (p *Poller) deliver(ctx context.Context, logger *slog.Logger, kind string, msg notifier.Message) error {
	if p.notifier == nil {
		return nil
	}
	err := p.notifier.Notify(ctx, msg)
	p.metrics.RecordNotification(p.notifier.Name(), kind, err)
	if err != nil {
		logging.Error(logger, "notification failed", err, logging.FieldNotifier, p.notifier.Name())
	}
	return err
}

func (p *Poller) load(ctx context.Context) (store.State, error) {
	state, err := p.states.Load(ctx)
	if err != nil {
		return store.State{Seen: homework.SeenState{}}, err
	}
	if state.Seen == nil {
		state.Seen = homework.SeenState{}
	}
	return state, nil
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	logging.Info(p.logger, msg, args...)
}

func (p *Poller) logError(msg string, err error, args ...any) {
	logging.Error(p.logger, msg, err, args...)
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, tracked int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.Tracked = tracked
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

func (p *Poller) setTracked(n int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.Tracked = n
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

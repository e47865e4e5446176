package discord

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/questx-lab/discordx/internal/common"
	"github.com/questx-lab/discordx/pkg/logger"
)

type ManagerState int32

const (
	StateUninitialized ManagerState = iota
	StatePopulating
	StatePopulated
)

func (s ManagerState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StatePopulating:
		return "populating"
	case StatePopulated:
		return "populated"
	}

	return "unknown"
}

// manager holds the population lifecycle shared by every manager. Fetches of
// one manager are serialized, so a full population and a single fetch never
// interleave their cache writes.
type manager struct {
	name   string
	logger logger.Logger

	mu        sync.Mutex
	state     atomic.Int32
	populated chan struct{}
	once      sync.Once
}

func (m *manager) init(name string, l logger.Logger) {
	m.name = name
	m.logger = l
	m.populated = make(chan struct{})
}

func (m *manager) State() ManagerState {
	return ManagerState(m.state.Load())
}

// Populated is closed once the first population attempt has finished,
// whether it succeeded or not.
func (m *manager) Populated() <-chan struct{} {
	return m.populated
}

// start runs the first population in the background. Its context is detached
// from the caller's cancellation.
func (m *manager) start(ctx context.Context, fn func(context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		_ = m.populate(ctx, fn)
	}()
}

// populate runs fn under the manager lock. A failure is logged and counted,
// and the cache keeps what it had.
func (m *manager) populate(ctx context.Context, fn func(context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	previous := ManagerState(m.state.Swap(int32(StatePopulating)))
	defer m.once.Do(func() { close(m.populated) })

	if err := fn(ctx); err != nil {
		m.logger.Errorf("Cannot populate %s: %v", m.name, err)
		common.PromCounters[common.DiscordCachePopulationFailures].WithLabelValues(m.name).Inc()
		m.state.Store(int32(previous))
		return err
	}

	m.state.Store(int32(StatePopulated))
	return nil
}

// locked runs fn under the manager lock without touching the state.
func (m *manager) locked(fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return fn()
}

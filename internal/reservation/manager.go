package reservation

import (
	"math/rand"
	"sync"
	"time"
)

// Manager hands out one Flow per client session. Flow state is page-local UI
// state in the original sense: owned by the session that created it and
// discarded on logout.
type Manager struct {
	client Booker
	seed   func() *rand.Rand

	mu    sync.Mutex
	flows map[string]*Flow
}

func NewManager(client Booker) *Manager {
	return &Manager{
		client: client,
		seed: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		flows: make(map[string]*Flow),
	}
}

// SetSeed overrides the rand source factory; tests use this to make the room
// pick deterministic.
func (m *Manager) SetSeed(seed func() *rand.Rand) {
	m.seed = seed
}

func (m *Manager) Flow(sid string) *Flow {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.flows[sid]
	if !ok {
		f = NewFlow(m.client, m.seed())
		m.flows[sid] = f
	}
	return f
}

func (m *Manager) Drop(sid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flows, sid)
}

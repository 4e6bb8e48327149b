package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"corpclicker/internal/game"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// ToastTTL is how long a queued toast stays collectable before it expires
// undelivered.
const ToastTTL = 3500 * time.Millisecond

// Toast is an ephemeral message produced by events, glitches, and
// achievement unlocks.
type Toast struct {
	Text    string    `json:"text"`
	Kind    string    `json:"kind"`
	Created time.Time `json:"created"`
}

// Identity is an optional display-only player record. The engine never
// consults it.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Session couples one engine with its periodic drivers and toast queue.
type Session struct {
	ID       string
	Engine   *game.Engine
	Identity *Identity

	mu     sync.Mutex
	toasts []Toast
	cancel context.CancelFunc
}

func (s *Session) pushToast(kind, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = append(s.toasts, Toast{Text: text, Kind: kind, Created: time.Now()})
}

// DrainToasts returns all unexpired pending toasts and clears the queue.
func (s *Session) DrainToasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	out := make([]Toast, 0, len(s.toasts))
	for _, t := range s.toasts {
		if now.Sub(t.Created) <= ToastTTL {
			out = append(out, t)
		}
	}
	s.toasts = nil
	return out
}

// SetIdentity attaches a display identity to the session.
func (s *Session) SetIdentity(id Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Identity = &id
}

// GetIdentity returns the attached identity, or nil.
func (s *Session) GetIdentity() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Identity
}

// Manager owns all live sessions and their driver goroutines.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	log      *slog.Logger
	ctx      context.Context
}

// NewManager returns a manager whose sessions stop when ctx is canceled.
func NewManager(ctx context.Context, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sessions: map[string]*Session{},
		log:      logger,
		ctx:      ctx,
	}
}

// Create starts a new session with a fresh engine and returns it.
func (m *Manager) Create() *Session {
	return m.adopt(game.NewEngine(m.log))
}

// Restore starts a new session around a restored state snapshot.
func (m *Manager) Restore(st *game.State) *Session {
	return m.adopt(game.NewEngineFromState(st, m.log))
}

func (m *Manager) adopt(eng *game.Engine) *Session {
	ctx, cancel := context.WithCancel(m.ctx)
	s := &Session{
		ID:     uuid.NewString(),
		Engine: eng,
		cancel: cancel,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	go m.run(ctx, s)
	m.log.Info("session started", "session_id", s.ID)
	return s
}

// Get returns a live session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete stops a session's drivers and forgets it.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.cancel()
	m.log.Info("session deleted", "session_id", id)
	return nil
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// run drives one session: resource ticks, event rolls, glitch rolls, and
// achievement sweeps each on their own cadence. Each firing applies exactly
// one step; late firings are not backfilled.
func (m *Manager) run(ctx context.Context, s *Session) {
	tick := time.NewTicker(game.TickInterval)
	events := time.NewTicker(game.EventInterval)
	glitches := time.NewTicker(game.GlitchInterval)
	achievements := time.NewTicker(game.AchievementInterval)
	defer tick.Stop()
	defer events.Stop()
	defer glitches.Stop()
	defer achievements.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Debug("session drivers stopped", "session_id", s.ID)
			return
		case <-tick.C:
			s.Engine.Tick()
		case <-events.C:
			if r := s.Engine.RollEvent(); r.Fired {
				s.pushToast("event", r.Text)
			}
		case <-glitches.C:
			if r := s.Engine.RollGlitch(); r.Fired {
				s.pushToast("glitch", r.Name+": "+r.Text)
			}
		case <-achievements.C:
			for _, a := range s.Engine.CheckAchievements() {
				s.pushToast("achievement", "🏆 Achievement: "+a.Name)
			}
		}
	}
}

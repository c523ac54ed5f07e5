package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mueblesstgo-roster/internal/views"
	"github.com/rs/zerolog"
)

type stagingSession struct {
	view     *views.FileStagingView
	lastSeen time.Time
}

// stagingService is the concrete implementation of StagingService
type stagingService struct {
	mu       sync.Mutex
	sessions map[string]*stagingSession
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	log      zerolog.Logger

	// sweeper lifecycle
	runMu   sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// newStagingService creates a new StagingService
func newStagingService(ttl, interval time.Duration, log zerolog.Logger) *stagingService {
	return &stagingService{
		sessions: make(map[string]*stagingSession),
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
		log:      log.With().Str("service", "staging").Logger(),
	}
}

// Open creates a fresh session with nothing staged
func (s *stagingService) Open() (string, *views.FileStagingView) {
	id := uuid.New().String()
	view := views.NewFileStagingView()

	s.mu.Lock()
	s.sessions[id] = &stagingSession{view: view, lastSeen: s.now()}
	active := len(s.sessions)
	s.mu.Unlock()

	s.log.Debug().Str("session_id", id).Int("active", active).Msg("Staging session opened")
	return id, view
}

// Get returns the view for id and refreshes its idle timer
func (s *stagingService) Get(id string) (*views.FileStagingView, bool) {
	if id == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	session.lastSeen = s.now()
	return session.view, true
}

// Close discards a session and whatever it had staged
func (s *stagingService) Close(id string) {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		s.log.Debug().Str("session_id", id).Msg("Staging session closed")
	}
}

// ActiveSessions returns the number of open sessions
func (s *stagingService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartSweeper launches the idle session sweeper. It returns once the sweeper
// is registered, so a StopSweeper issued right after always stops it.
func (s *stagingService) StartSweeper(ctx context.Context) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)

	go s.runSweeper(s.ctx)
}

func (s *stagingService) runSweeper(ctx context.Context) {
	defer s.wg.Done()

	s.log.Info().
		Dur("ttl", s.ttl).
		Dur("interval", s.interval).
		Msg("Staging sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("Staging sweeper stopping")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// StopSweeper stops the sweeper and waits for it to exit
func (s *stagingService) StopSweeper() {
	s.runMu.Lock()
	if !s.running {
		s.runMu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	s.runMu.Unlock()

	s.wg.Wait()
	s.log.Info().Msg("Staging sweeper stopped")
}

// sweep drops sessions idle for longer than the TTL
func (s *stagingService) sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	removed := 0
	for id, session := range s.sessions {
		if session.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	active := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		s.log.Info().Int("removed", removed).Int("active", active).Msg("Expired staging sessions")
	}
	return removed
}

// Package session keeps per-visitor screens state in memory
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/customers-viewer/internal/metrics"
)

// Worker is background process bound to app lifecycle
type Worker interface {
	Listen(context.Context) error
	Stop()
}

// Cfg is sessions configuration
type Cfg struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
}

// Registry stores live sessions and drops idle ones
type Registry struct {
	cfg         Cfg
	newUserList UserListFactory
	recorder    *metrics.Recorder
	logger      logrus.FieldLogger
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewRegistry builds empty registry
func NewRegistry(cfg Cfg, newUserList UserListFactory, recorder *metrics.Recorder, logger logrus.FieldLogger) *Registry {
	return &Registry{
		cfg:         cfg,
		newUserList: newUserList,
		recorder:    recorder,
		logger:      logger.WithField("component", "sessions"),
		now:         time.Now,
		sessions:    make(map[string]*Session),
		stopCh:      make(chan struct{}),
	}
}

// Get returns live session by id and marks it as recently used
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, false
	}
	s.touch(r.now())
	return s, true
}

// Create starts new session on the initial route
func (r *Registry) Create() *Session {
	s := newSession(uuid.NewString(), r.newUserList, r.now())

	r.mu.Lock()
	r.sessions[s.ID] = s
	n := len(r.sessions)
	r.mu.Unlock()

	r.recorder.SetActiveSessions(n)
	r.logger.WithField("session", s.ID).Debug("session started")
	return s
}

// Len returns number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops sessions idle longer than configured timeout and returns how many were dropped
func (r *Registry) Sweep() int {
	now := r.now()
	expired := make([]*Session, 0)

	r.mu.Lock()
	for id, s := range r.sessions {
		if s.idleSince(now) >= r.cfg.IdleTimeout {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}

	r.recorder.SetActiveSessions(n)
	if len(expired) > 0 {
		r.logger.WithField("dropped", len(expired)).Debug("idle sessions dropped")
	}
	return len(expired)
}

// Listen sweeps idle sessions periodically until stopped or context is done
func (r *Registry) Listen(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Sweep()
		case <-r.stopCh:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

// Stop terminates Listen loop and disposes all sessions
func (r *Registry) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)

		r.mu.Lock()
		sessions := r.sessions
		r.sessions = make(map[string]*Session)
		r.mu.Unlock()

		for _, s := range sessions {
			s.Close()
		}
		r.recorder.SetActiveSessions(0)
	})
}

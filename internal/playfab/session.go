package playfab

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type SessionState int

const (
	SessionUninitialized SessionState = iota
	SessionReady
	SessionExpired
)

func (s SessionState) String() string {
	switch s {
	case SessionReady:
		return "ready"
	case SessionExpired:
		return "expired"
	default:
		return "uninitialized"
	}
}

type loginFunc func(ctx context.Context) (string, error)

// Session owns the client session ticket. A ticket older than ttl counts as
// expired and concurrent logins share one in-flight request.
type Session struct {
	mu         sync.RWMutex
	state      SessionState
	ticket     string
	loggedInAt time.Time

	ttl          time.Duration
	loginTimeout time.Duration
	login        loginFunc
	group        singleflight.Group
	now          func() time.Time
}

func newSession(ttl, loginTimeout time.Duration, login loginFunc) *Session {
	return &Session{
		ttl:          ttl,
		loginTimeout: loginTimeout,
		login:        login,
		now:          time.Now,
	}
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentState()
}

func (s *Session) currentState() SessionState {
	if s.state == SessionReady && s.ttl > 0 && s.now().Sub(s.loggedInAt) >= s.ttl {
		return SessionExpired
	}
	return s.state
}

// Ticket returns a valid ticket, logging in first when the session is not ready.
func (s *Session) Ticket(ctx context.Context) (string, error) {
	s.mu.RLock()
	if s.currentState() == SessionReady {
		t := s.ticket
		s.mu.RUnlock()
		return t, nil
	}
	s.mu.RUnlock()

	return s.refresh(ctx)
}

// Invalidate marks the session expired after the API rejected ticket.
func (s *Session) Invalidate(ticket string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticket == ticket && s.state == SessionReady {
		s.state = SessionExpired
	}
}

// refresh shares one login between concurrent callers. The login runs detached
// from any single caller's cancellation; each caller stops waiting on its own ctx.
func (s *Session) refresh(ctx context.Context) (string, error) {
	ch := s.group.DoChan("login", func() (interface{}, error) {
		loginCtx := context.WithoutCancel(ctx)
		if s.loginTimeout > 0 {
			var cancel context.CancelFunc
			loginCtx, cancel = context.WithTimeout(loginCtx, s.loginTimeout)
			defer cancel()
		}

		ticket, err := s.login(loginCtx)
		if err != nil {
			return "", err
		}

		s.mu.Lock()
		s.ticket = ticket
		s.state = SessionReady
		s.loggedInAt = s.now()
		s.mu.Unlock()
		return ticket, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

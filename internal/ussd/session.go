package ussd

import (
	"context"
	"sync"
	"time"

	"edufair/internal/domain"
)

type state int

const (
	stateMenu state = iota
	stateName
	stateSchool
	stateCustomSchool
	stateConfirm
)

type draft struct {
	kind   domain.RegistrationType
	name   string
	school string
}

// Session is one caller's walk through the menu.
type Session struct {
	mu sync.Mutex

	ID       string
	Phone    string
	Started  time.Time
	state    state
	consumed int // inputs of the cumulative text already handled
	attempts int
	draft    draft
}

// ended remembers the final screen of a finished session.
type ended struct {
	resp Response
	at   time.Time
}

// Sessions holds live sessions keyed by gateway session id, plus the final
// screen of recently ended ones.
type Sessions struct {
	ttl time.Duration

	mu    sync.Mutex
	m     map[string]*Session
	ended map[string]ended
}

// NewSessions returns an empty table whose sessions expire after ttl.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{ttl: ttl, m: make(map[string]*Session), ended: make(map[string]ended)}
}

// End drops the live session for id and keeps resp so a retried final hop
// gets the same answer for up to ttl.
func (s *Sessions) End(id string, resp Response, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	s.ended[id] = ended{resp: resp, at: now}
}

// Ended returns the final screen of a session that ended within ttl.
func (s *Sessions) Ended(id string, now time.Time) (Response, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.ended[id]
	if !ok || now.Sub(e.at) > s.ttl {
		return Response{}, false
	}
	return e.resp, true
}

// Acquire returns the live session for id, starting a new one when none
// exists or the old one has expired.
func (s *Sessions) Acquire(id, phone string, now time.Time) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.m[id]; ok && now.Sub(sess.Started) <= s.ttl {
		return sess
	}
	sess := &Session{ID: id, Phone: phone, Started: now}
	s.m[id] = sess
	return sess
}

// Delete drops the session for id.
func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
}

// Len is the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// Sweep removes sessions older than the ttl and returns their ids. Ended
// sessions past the ttl are forgotten too but not reported.
func (s *Sessions) Sweep(now time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.ended {
		if now.Sub(e.at) > s.ttl {
			delete(s.ended, id)
		}
	}

	var expired []string
	for id, sess := range s.m {
		if now.Sub(sess.Started) > s.ttl {
			delete(s.m, id)
			expired = append(expired, id)
		}
	}
	return expired
}

// Janitor sweeps every interval until ctx is cancelled. onExpire, when set,
// is called with each removed id.
func (s *Sessions) Janitor(ctx context.Context, interval time.Duration, onExpire func(id string)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			for _, id := range s.Sweep(now) {
				if onExpire != nil {
					onExpire(id)
				}
			}
		}
	}
}

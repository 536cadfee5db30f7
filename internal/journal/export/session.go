package export

import (
	"sync"

	"github.com/dmitrijs2005/photojournal/internal/journal/models"
)

// State is a snapshot of a Session.
type State struct {
	Staged   *models.Entry
	Busy     bool
	Progress int
}

// Session holds the single staged-entry slot and the busy/progress
// indicator. Readers may call its getters from any goroutine.
type Session struct {
	mu        sync.Mutex
	state     State
	listeners []func(State)
}

func NewSession() *Session {
	return &Session{}
}

// OnChange registers fn to be called after every state change.
func (s *Session) OnChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Staged() *models.Entry { return s.State().Staged }
func (s *Session) Busy() bool            { return s.State().Busy }
func (s *Session) Progress() int         { return s.State().Progress }

func (s *Session) stage(e *models.Entry) {
	s.update(func(st *State) {
		if e == nil {
			st.Staged = nil
			return
		}
		cp := *e
		st.Staged = &cp
	})
}

func (s *Session) begin() {
	s.update(func(st *State) {
		st.Busy = true
		st.Progress = 0
	})
}

func (s *Session) setProgress(p int) {
	s.update(func(st *State) { st.Progress = p })
}

func (s *Session) finish() {
	s.update(func(st *State) {
		st.Staged = nil
		st.Busy = false
	})
}

func (s *Session) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	st := s.state
	listeners := append([]func(State){}, s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(st)
	}
}

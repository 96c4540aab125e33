package service

import (
	"sync/atomic"
	"time"
)

// State — разделяемое состояние для health-проб: готовность,
// связь со стримом и пульс рыночных событий.
type State struct {
	ready     atomic.Bool
	startedAt time.Time

	wsConnected  atomic.Bool
	eventsTotal  atomic.Int64
	lastTickUnix atomic.Int64 // unix seconds
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) SetWSConnected(v bool) { s.wsConnected.Store(v) }
func (s *State) WSConnected() bool     { return s.wsConnected.Load() }

// TouchTick отмечает очередную закрытую свечу из стрима.
func (s *State) TouchTick(t time.Time) {
	s.eventsTotal.Add(1)
	s.lastTickUnix.Store(t.Unix())
}

func (s *State) EventsTotal() int64 { return s.eventsTotal.Load() }

func (s *State) LastTick() time.Time {
	u := s.lastTickUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }

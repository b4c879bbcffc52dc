// Package contacttest provides a manually advanced scheduler for tests.
package contacttest

import (
	"sort"
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/contact"
)

// Scheduler fires callbacks only when Advance moves its clock past their due
// time. Callbacks run synchronously on the goroutine calling Advance.
type Scheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*task
}

type task struct {
	s       *Scheduler
	due     time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *task) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) AfterFunc(d time.Duration, f func()) contact.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &task{s: s, due: s.now + d, seq: s.seq, f: f}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by d and runs every callback that became
// due, in due order. Callbacks scheduled by those callbacks also run if they
// fall inside the window.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.due
		next.fired = true
		s.mu.Unlock()

		next.f()
	}
}

// Pending reports how many callbacks are scheduled and not yet stopped or run.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (s *Scheduler) nextDue(target time.Duration) *task {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.tasks = live
	sort.Slice(live, func(i, j int) bool {
		if live[i].due != live[j].due {
			return live[i].due < live[j].due
		}
		return live[i].seq < live[j].seq
	})
	if len(live) == 0 || live[0].due > target {
		return nil
	}
	return live[0]
}

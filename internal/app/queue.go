package app

import "github.com/nhath/tabsql/internal/action"

const queueSize = 64

// Queue carries actions posted from outside the dispatch loop, such as the
// error reported after a recovered panic. It is drained once per frame.
type Queue struct {
	ch chan action.Action
}

func NewQueue() *Queue {
	return &Queue{ch: make(chan action.Action, queueSize)}
}

// Post enqueues a without blocking. It reports false when the queue is full
// and a was dropped.
func (q *Queue) Post(a action.Action) bool {
	select {
	case q.ch <- a:
		return true
	default:
		return false
	}
}

// Drain returns the actions queued so far, oldest first
func (q *Queue) Drain() []action.Action {
	n := len(q.ch)
	if n == 0 {
		return nil
	}
	out := make([]action.Action, 0, n)
	for range n {
		out = append(out, <-q.ch)
	}
	return out
}

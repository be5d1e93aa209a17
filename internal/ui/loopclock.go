package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mercauca/internal/clock"
)

// clockFireMsg asks the model to run a loop clock callback
type clockFireMsg struct {
	id uint64
}

// loopClock is a clock.Clock whose callbacks run inside Update. The
// runtime timer only posts a message; the callback itself is looked up and
// run on the UI goroutine, so it can touch model state freely.
type loopClock struct {
	mu      sync.Mutex
	next    uint64
	pending map[uint64]func()
	send    func(tea.Msg)
}

type loopTimer struct {
	clock *loopClock
	id    uint64
	timer *time.Timer
}

func newLoopClock() *loopClock {
	return &loopClock{pending: make(map[uint64]func())}
}

// SetSender installs the function used to post fire messages
func (c *loopClock) SetSender(send func(tea.Msg)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.send = send
}

func (c *loopClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	c.next++
	id := c.next
	c.pending[id] = f
	c.mu.Unlock()

	t := &loopTimer{clock: c, id: id}
	t.timer = time.AfterFunc(d, func() {
		c.mu.Lock()
		send := c.send
		_, live := c.pending[id]
		c.mu.Unlock()
		if live && send != nil {
			send(clockFireMsg{id: id})
		}
	})
	return t
}

// fire runs the callback for id unless it was stopped meanwhile
func (c *loopClock) fire(id uint64) {
	c.mu.Lock()
	f, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()
	if ok {
		f()
	}
}

// Pending returns the number of callbacks not yet run or stopped
func (c *loopClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	_, live := t.clock.pending[t.id]
	delete(t.clock.pending, t.id)
	return live
}

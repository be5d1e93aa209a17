package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopClockRunsCallbacksOnFire(t *testing.T) {
	c := newLoopClock()
	sent := make(chan tea.Msg, 1)
	c.SetSender(func(msg tea.Msg) { sent <- msg })

	ran := false
	c.AfterFunc(time.Millisecond, func() { ran = true })

	var msg tea.Msg
	select {
	case msg = <-sent:
	case <-time.After(time.Second):
		t.Fatal("timer never posted its message")
	}
	fire, ok := msg.(clockFireMsg)
	require.True(t, ok)
	assert.False(t, ran, "the callback waits for the event loop")

	c.fire(fire.id)
	assert.True(t, ran)
	assert.Zero(t, c.Pending())

	c.fire(fire.id)
	assert.Zero(t, c.Pending(), "firing twice is harmless")
}

func TestLoopClockStopBeforeFire(t *testing.T) {
	c := newLoopClock()
	sent := make(chan tea.Msg, 1)
	c.SetSender(func(msg tea.Msg) { sent <- msg })

	ran := false
	timer := c.AfterFunc(time.Hour, func() { ran = true })
	assert.Equal(t, 1, c.Pending())
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "a stopped timer reports it was not live")
	assert.Zero(t, c.Pending())
	assert.False(t, ran)
}

func TestLoopClockStopAfterPost(t *testing.T) {
	c := newLoopClock()
	sent := make(chan tea.Msg, 1)
	c.SetSender(func(msg tea.Msg) { sent <- msg })

	ran := false
	timer := c.AfterFunc(time.Millisecond, func() { ran = true })
	msg := <-sent
	timer.Stop()

	c.fire(msg.(clockFireMsg).id)
	assert.False(t, ran, "a timer stopped while its message was queued does not run")
}

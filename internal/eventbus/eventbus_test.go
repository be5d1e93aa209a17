package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 2)
	b.Subscribe(EventCartChanged, func(e DomainEvent) { got <- e })
	b.Subscribe(EventSessionEnded, func(e DomainEvent) { got <- e })

	b.Publish(CartChangedEvent{UserID: "ana"})

	select {
	case e := <-got:
		require.IsType(t, CartChangedEvent{}, e)
		assert.Equal(t, "ana", e.(CartChangedEvent).UserID)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	select {
	case e := <-got:
		t.Fatalf("unexpected event %v", e.Type())
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	defer b.Close()

	var first, second atomic.Int32
	done := make(chan struct{}, 4)
	unsub := b.Subscribe(EventCheckoutCompleted, func(DomainEvent) { first.Add(1); done <- struct{}{} })
	b.Subscribe(EventCheckoutCompleted, func(DomainEvent) { second.Add(1); done <- struct{}{} })

	unsub()
	b.Publish(CheckoutCompletedEvent{UserID: "ana", Total: 10})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(0), first.Load())
	assert.Equal(t, int32(1), second.Load())
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	b := New()
	defer b.Close()

	done := make(chan struct{})
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(DomainEvent) { close(done) })

	b.Publish(ErrorEvent{Message: "x"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("healthy handler was not called")
	}
}

func TestPublishAfterCloseIsIgnored(t *testing.T) {
	b := New()
	b.Close()
	b.Close()

	assert.NotPanics(t, func() { b.Publish(SessionEndedEvent{Reason: "logout"}) })
}

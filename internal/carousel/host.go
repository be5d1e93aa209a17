package carousel

import (
	"sort"
	"sync"
	"time"
)

// Key is a keyboard key the controller reacts to
type Key string

const (
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyHome       Key = "Home"
	KeyEnd        Key = "End"
)

// Trigger is a signal source the controller subscribes to. On returns a
// function that detaches the listener.
type Trigger interface {
	On(fn func()) (off func())
}

// KeySource delivers key presses. A listener returns true when it consumed
// the key, which tells the host to suppress its default behaviour.
type KeySource interface {
	OnKey(fn func(Key) bool) (off func())
}

// Slide receives its ordinal label ("1 de 3")
type Slide interface {
	SetLabel(label string)
}

// Track receives the horizontal offset of the slide strip, in percent
type Track interface {
	SetOffset(percent int)
}

// Dot is a pagination indicator that can also be selected by the user
type Dot interface {
	Trigger
	SetSelected(selected bool)
}

// Root is everything a host view exposes to a controller. Nil fields are
// simply not wired.
type Root struct {
	Slides []Slide
	Track  Track
	Prev   Trigger
	Next   Trigger
	Dots   []Dot
	Keys   KeySource

	HoverEnter Trigger
	HoverLeave Trigger
	FocusIn    Trigger
	FocusOut   Trigger
	TouchStart Trigger
	TouchEnd   Trigger

	// AutoplayInterval overrides the default autoplay delay for this root
	// when Config.AutoplayDelay is not set.
	AutoplayInterval time.Duration
}

// Signal is a reusable Trigger. Hosts call Emit when the underlying
// interaction happens.
type Signal struct {
	mu        sync.Mutex
	next      int
	listeners map[int]func()
}

// On registers fn and returns its detach function
func (s *Signal) On(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listeners == nil {
		s.listeners = make(map[int]func())
	}
	id := s.next
	s.next++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Emit calls every attached listener in registration order
func (s *Signal) Emit() {
	for _, fn := range s.snapshot() {
		fn()
	}
}

// Listeners returns the number of attached listeners
func (s *Signal) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *Signal) snapshot() []func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	return fns
}

// KeySignal is a reusable KeySource
type KeySignal struct {
	mu        sync.Mutex
	next      int
	listeners map[int]func(Key) bool
}

// OnKey registers fn and returns its detach function
func (s *KeySignal) OnKey(fn func(Key) bool) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listeners == nil {
		s.listeners = make(map[int]func(Key) bool)
	}
	id := s.next
	s.next++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Emit delivers k to every listener and reports whether any consumed it
func (s *KeySignal) Emit(k Key) bool {
	s.mu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Key) bool, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.mu.Unlock()

	handled := false
	for _, fn := range fns {
		if fn(k) {
			handled = true
		}
	}
	return handled
}

// Listeners returns the number of attached listeners
func (s *KeySignal) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Package carousel implements a circular slide controller with an autoplay
// timer that pauses while the user interacts with it.
//
// The controller holds no rendering knowledge. A host view hands it a Root
// (slides, track, dots, triggers, key source) and a clock; the controller
// keeps the current index, the autoplay timer and the accessibility labels
// in sync.
package carousel

import (
	"fmt"
	"sync"
	"time"

	"mercauca/internal/clock"
)

const (
	// DefaultAutoplayDelay is the time between autoplay advances
	DefaultAutoplayDelay = 5000 * time.Millisecond
	// DefaultTouchResumeDelay is the grace period after a touch ends before
	// autoplay resumes, so a gesture in progress is not interrupted
	DefaultTouchResumeDelay = 300 * time.Millisecond
)

// State is the autoplay state
type State int

const (
	StateRunning State = iota
	StatePaused
	StateDisabled
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateDisabled:
		return "disabled"
	default:
		return "stopped"
	}
}

// pause sources tracked independently so overlapping triggers do not resume
// each other
type pauseSource int

const (
	sourceHover pauseSource = 1 << iota
	sourceFocus
	sourceTouch
	sourceExplicit
)

// Config configures a controller instance
type Config struct {
	// AutoplayDelay overrides DefaultAutoplayDelay when positive
	AutoplayDelay time.Duration
	// TouchResumeDelay overrides DefaultTouchResumeDelay when positive
	TouchResumeDelay time.Duration
	// ReduceMotion disables autoplay for the whole controller lifetime
	ReduceMotion bool
	// Clock schedules autoplay ticks; defaults to clock.Real
	Clock clock.Clock
	// Label formats a slide's ordinal label; defaults to "i de N"
	Label func(position, total int) string
}

// Disposer tears a controller down
type Disposer func()

// Controller drives one mounted carousel. All methods are safe on a nil
// receiver, which is what Init returns for an absent root.
type Controller struct {
	mu sync.Mutex

	root  *Root
	total int
	index int

	paused  pauseSource
	reduce  bool
	delay   time.Duration
	touchGr time.Duration
	clock   clock.Clock
	label   func(position, total int) string

	// autoplay is the single live repeating timer, nil when none
	autoplay clock.Timer
	// generation invalidates ticks of timers that were stopped after their
	// callback was already queued
	generation uint64

	resumeTimer clock.Timer
	resumeGen   uint64

	detach   []func()
	disposed bool
}

// Init binds a controller to root and starts autoplay unless reduced motion
// is requested. A nil root, or one without slides, yields a nil controller
// and a disposer that does nothing.
func Init(root *Root, cfg Config) (*Controller, Disposer) {
	if root == nil || len(root.Slides) == 0 {
		return nil, func() {}
	}

	c := &Controller{
		root:    root,
		total:   len(root.Slides),
		reduce:  cfg.ReduceMotion,
		delay:   DefaultAutoplayDelay,
		touchGr: DefaultTouchResumeDelay,
		clock:   cfg.Clock,
		label:   cfg.Label,
	}
	switch {
	case cfg.AutoplayDelay > 0:
		c.delay = cfg.AutoplayDelay
	case root.AutoplayInterval > 0:
		c.delay = root.AutoplayInterval
	}
	if cfg.TouchResumeDelay > 0 {
		c.touchGr = cfg.TouchResumeDelay
	}
	if c.clock == nil {
		c.clock = clock.Real{}
	}
	if c.label == nil {
		c.label = func(position, total int) string {
			return fmt.Sprintf("%d de %d", position, total)
		}
	}

	c.bind()

	c.mu.Lock()
	c.syncLabelsLocked()
	c.syncUILocked()
	c.startLocked()
	c.mu.Unlock()

	return c, c.Dispose
}

func (c *Controller) bind() {
	r := c.root
	on := func(t Trigger, fn func()) {
		if t != nil {
			c.detach = append(c.detach, t.On(fn))
		}
	}

	for i, d := range r.Dots {
		if d == nil {
			continue
		}
		i := i
		on(d, func() { c.navigate(func() { c.goToLocked(i) }) })
	}
	on(r.Prev, func() { c.navigate(func() { c.goToLocked(c.index - 1) }) })
	on(r.Next, func() { c.navigate(func() { c.goToLocked(c.index + 1) }) })

	on(r.HoverEnter, func() { c.pauseFrom(sourceHover) })
	on(r.HoverLeave, func() { c.resumeFrom(sourceHover) })
	on(r.FocusIn, func() { c.pauseFrom(sourceFocus) })
	on(r.FocusOut, func() { c.resumeFrom(sourceFocus) })
	on(r.TouchStart, c.touchStart)
	on(r.TouchEnd, c.touchEnd)

	if r.Keys != nil {
		c.detach = append(c.detach, r.Keys.OnKey(c.HandleKey))
	}
}

// Index returns the current slide index
func (c *Controller) Index() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Len returns the number of slides
func (c *Controller) Len() int {
	if c == nil {
		return 0
	}
	return c.total
}

// Delay returns the effective autoplay delay
func (c *Controller) Delay() time.Duration {
	if c == nil {
		return 0
	}
	return c.delay
}

// Paused reports whether any pause trigger is active
func (c *Controller) Paused() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused != 0
}

// AutoplayActive reports whether an autoplay timer is live
func (c *Controller) AutoplayActive() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoplay != nil
}

// State returns the autoplay state
func (c *Controller) State() State {
	if c == nil {
		return StateStopped
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.disposed:
		return StateStopped
	case c.reduce:
		return StateDisabled
	case c.paused != 0:
		return StatePaused
	case c.autoplay != nil:
		return StateRunning
	default:
		return StateStopped
	}
}

// Offset returns the track offset in percent for the current index
func (c *Controller) Offset() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return -(c.index * 100)
}

// GoTo moves to slide i, wrapping in both directions
func (c *Controller) GoTo(i int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.goToLocked(i)
}

// Previous moves one slide back, wrapping to the last slide
func (c *Controller) Previous() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.goToLocked(c.index - 1)
}

// Next moves one slide forward, wrapping to the first slide
func (c *Controller) Next() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.goToLocked(c.index + 1)
}

// Pause suspends autoplay and cancels the live timer
func (c *Controller) Pause() {
	c.pauseFrom(sourceExplicit)
}

// Resume clears every pause condition and starts autoplay unless a timer is
// already live or reduced motion is set
func (c *Controller) Resume() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.cancelResumeLocked()
	c.paused = 0
	c.startLocked()
}

// RestartAutoplay resets the autoplay countdown
func (c *Controller) RestartAutoplay() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.stopLocked()
	c.startLocked()
}

// HandleKey applies the keyboard contract and reports whether the key was
// consumed. A disposed controller consumes nothing.
func (c *Controller) HandleKey(k Key) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	disposed := c.disposed
	c.mu.Unlock()
	if disposed {
		return false
	}
	var move func()
	switch k {
	case KeyArrowLeft:
		move = func() { c.goToLocked(c.index - 1) }
	case KeyArrowRight:
		move = func() { c.goToLocked(c.index + 1) }
	case KeyHome:
		move = func() { c.goToLocked(0) }
	case KeyEnd:
		move = func() { c.goToLocked(c.total - 1) }
	default:
		return false
	}
	c.navigate(move)
	return true
}

// Dispose cancels every timer and detaches every listener. Calling it more
// than once is harmless.
func (c *Controller) Dispose() {
	if c == nil {
		return
	}
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.stopLocked()
	c.cancelResumeLocked()
	detach := c.detach
	c.detach = nil
	c.mu.Unlock()

	for _, off := range detach {
		off()
	}
}

// navigate applies a manual navigation and resets the autoplay countdown
func (c *Controller) navigate(move func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	move()
	c.stopLocked()
	c.startLocked()
}

func (c *Controller) pauseFrom(src pauseSource) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.paused |= src
	c.stopLocked()
}

func (c *Controller) resumeFrom(src pauseSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.paused &^= src
	c.startLocked()
}

func (c *Controller) touchStart() {
	c.mu.Lock()
	c.cancelResumeLocked()
	c.mu.Unlock()
	c.pauseFrom(sourceTouch)
}

func (c *Controller) touchEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.cancelResumeLocked()
	gen := c.resumeGen
	c.resumeTimer = c.clock.AfterFunc(c.touchGr, func() {
		c.mu.Lock()
		stale := gen != c.resumeGen || c.disposed
		if !stale {
			c.resumeTimer = nil
		}
		c.mu.Unlock()
		if !stale {
			c.resumeFrom(sourceTouch)
		}
	})
}

func (c *Controller) cancelResumeLocked() {
	c.resumeGen++
	if c.resumeTimer != nil {
		c.resumeTimer.Stop()
		c.resumeTimer = nil
	}
}

func (c *Controller) goToLocked(i int) {
	c.index = ((i % c.total) + c.total) % c.total
	c.syncUILocked()
}

// startLocked arms the autoplay timer. It is a no-op while paused, under
// reduced motion, or when a timer is already live.
func (c *Controller) startLocked() {
	if c.reduce || c.paused != 0 || c.autoplay != nil || c.disposed {
		return
	}
	c.generation++
	c.armLocked(c.generation)
}

func (c *Controller) armLocked(gen uint64) {
	c.autoplay = c.clock.AfterFunc(c.delay, func() { c.tick(gen) })
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.autoplay == nil || c.disposed {
		return
	}
	c.goToLocked(c.index + 1)
	c.armLocked(gen)
}

func (c *Controller) stopLocked() {
	if c.autoplay == nil {
		return
	}
	c.autoplay.Stop()
	c.autoplay = nil
	c.generation++
}

func (c *Controller) syncLabelsLocked() {
	for i, s := range c.root.Slides {
		if s != nil {
			s.SetLabel(c.label(i+1, c.total))
		}
	}
}

func (c *Controller) syncUILocked() {
	if c.root.Track != nil {
		c.root.Track.SetOffset(-(c.index * 100))
	}

	// a circular carousel never disables its buttons
	for _, t := range []Trigger{c.root.Prev, c.root.Next} {
		if b, ok := t.(interface{ SetDisabled(bool) }); ok {
			b.SetDisabled(false)
		}
	}

	for i, d := range c.root.Dots {
		if d != nil {
			d.SetSelected(i == c.index)
		}
	}
}

package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mercauca/internal/carousel"
	"mercauca/internal/ui/state"
	"mercauca/internal/ui/views"
)

// carouselHost exposes the home page carousel to the controller. Writes
// from the controller land in AppState; terminal input is turned into
// signals.
type carouselHost struct {
	state *state.AppState

	prev carousel.Signal
	next carousel.Signal
	dots []*hostDot
	keys carousel.KeySignal

	hoverEnter carousel.Signal
	hoverLeave carousel.Signal
	focusIn    carousel.Signal
	focusOut   carousel.Signal
	touchStart carousel.Signal
	touchEnd   carousel.Signal

	hovering bool
	pressed  bool
	focused  bool
}

type hostSlide struct {
	state *state.AppState
	i     int
}

func (s hostSlide) SetLabel(label string) {
	if s.i < len(s.state.Slides) {
		s.state.Slides[s.i].Label = label
	}
}

type hostTrack struct {
	state *state.AppState
}

func (t hostTrack) SetOffset(percent int) {
	t.state.TrackOffset = percent
}

type hostDot struct {
	carousel.Signal
	state *state.AppState
	i     int
}

func (d *hostDot) SetSelected(selected bool) {
	if d.i < len(d.state.DotSelected) {
		d.state.DotSelected[d.i] = selected
	}
}

func newCarouselHost(s *state.AppState) *carouselHost {
	h := &carouselHost{state: s}
	for i := range s.Slides {
		h.dots = append(h.dots, &hostDot{state: s, i: i})
	}
	return h
}

// Root builds the capability set handed to carousel.Init
func (h *carouselHost) Root(interval time.Duration) *carousel.Root {
	if len(h.state.Slides) == 0 {
		return nil
	}
	root := &carousel.Root{
		Track:            hostTrack{state: h.state},
		Prev:             &h.prev,
		Next:             &h.next,
		Keys:             &h.keys,
		HoverEnter:       &h.hoverEnter,
		HoverLeave:       &h.hoverLeave,
		FocusIn:          &h.focusIn,
		FocusOut:         &h.focusOut,
		TouchStart:       &h.touchStart,
		TouchEnd:         &h.touchEnd,
		AutoplayInterval: interval,
	}
	for i := range h.state.Slides {
		root.Slides = append(root.Slides, hostSlide{state: h.state, i: i})
	}
	for _, d := range h.dots {
		root.Dots = append(root.Dots, d)
	}
	return root
}

// reset forgets pointer and focus state after the carousel is unmounted
func (h *carouselHost) reset() {
	h.hovering = false
	h.pressed = false
	h.focused = false
}

// Key delivers a key press and reports whether the carousel consumed it
func (h *carouselHost) Key(k carousel.Key) bool {
	return h.keys.Emit(k)
}

// SetFocused tracks keyboard focus entering or leaving the carousel
func (h *carouselHost) SetFocused(focused bool) {
	if focused == h.focused {
		return
	}
	h.focused = focused
	if focused {
		h.focusIn.Emit()
	} else {
		h.focusOut.Emit()
	}
}

// HandleMouse maps pointer motion to hover and a press/release pair to a
// touch. Releasing over a button or dot activates it.
func (h *carouselHost) HandleMouse(msg tea.MouseMsg, layout views.CarouselLayout) {
	inside := layout.Area.Contains(msg.X, msg.Y)
	if inside != h.hovering {
		h.hovering = inside
		if inside {
			h.hoverEnter.Emit()
		} else {
			h.hoverLeave.Emit()
		}
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if inside && msg.Button == tea.MouseButtonLeft && !h.pressed {
			h.pressed = true
			h.touchStart.Emit()
		}
	case tea.MouseActionRelease:
		if !h.pressed {
			return
		}
		h.pressed = false
		switch {
		case layout.Prev.Contains(msg.X, msg.Y):
			h.prev.Emit()
		case layout.Next.Contains(msg.X, msg.Y):
			h.next.Emit()
		default:
			for i, r := range layout.Dots {
				if r.Contains(msg.X, msg.Y) && i < len(h.dots) {
					h.dots[i].Emit()
					break
				}
			}
		}
		h.touchEnd.Emit()
	}
}

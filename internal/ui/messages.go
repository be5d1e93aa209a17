package ui

import (
	"mercauca/internal/eventbus"
	"mercauca/internal/ui/state"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// searchDebounceMsg fires once typing settles. Seq identifies the query
// it was scheduled for.
type searchDebounceMsg struct {
	seq   int
	query string
}

// closeFeedbackMsg closes the add-to-cart popup it was scheduled for
type closeFeedbackMsg struct {
	seq int
}

// closeSuccessMsg closes the checkout success overlay
type closeSuccessMsg struct {
	seq int
}

// navigateMsg moves to screen after a successful form submission
type navigateMsg struct {
	seq    int
	screen state.Screen
}

// clearStatusMsg clears the footer status if it still shows text
type clearStatusMsg struct {
	text string
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	what string
	err  error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}

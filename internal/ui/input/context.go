package input

import (
	"mercauca/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
	// Selector reports whether the focused form field is an option picker
	Selector func() bool
}

func (c *ModelContext) OnHome() bool {
	return c.State.Screen == state.ScreenHome
}

func (c *ModelContext) OnProduct() bool {
	return c.State.Screen == state.ScreenProduct
}

func (c *ModelContext) OnForm() bool {
	switch c.State.Screen {
	case state.ScreenLogin, state.ScreenRegister, state.ScreenSell:
		return true
	}
	return false
}

func (c *ModelContext) CarouselFocused() bool {
	return c.OnHome() && c.State.Focus == state.FocusCarousel
}

func (c *ModelContext) GridFocused() bool {
	return c.OnHome() && c.State.Focus == state.FocusGrid
}

func (c *ModelContext) SelectorFocused() bool {
	return c.Selector != nil && c.Selector()
}

// SearchQuery returns the current search query
func (c *ModelContext) SearchQuery() string {
	return c.State.SearchQuery
}

func (c *ModelContext) ResultCount() int {
	if !c.State.ShowResults {
		return 0
	}
	return len(c.State.SearchResults)
}

func (c *ModelContext) LoggedIn() bool {
	return c.State.LoggedIn()
}

func (c *ModelContext) CartItemCount() int {
	if c.State.Cart == nil {
		return 0
	}
	return len(c.State.Cart.Items)
}

package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"mercauca/internal/carousel"
	"mercauca/internal/ui/input/types"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

var carouselKeys = map[string]carousel.Key{
	"left":  carousel.KeyArrowLeft,
	"h":     carousel.KeyArrowLeft,
	"right": carousel.KeyArrowRight,
	"l":     carousel.KeyArrowRight,
	"home":  carousel.KeyHome,
	"g":     carousel.KeyHome,
	"end":   carousel.KeyEnd,
	"G":     carousel.KeyEnd,
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	key := msg.String()

	// Page specific keys take precedence over the global ones
	switch {
	case ctx.OnHome():
		if actions, ok := m.homeKey(key, ctx); ok {
			return actions, true
		}
	case ctx.OnProduct():
		if actions, ok := m.productKey(key); ok {
			return actions, true
		}
	}

	switch key {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "q":
		return []types.Action{types.QuitAction{}}, true
	case "esc":
		if ctx.OnHome() && !ctx.CarouselFocused() && !ctx.GridFocused() {
			return nil, false
		}
		return []types.Action{types.BackAction{}}, true
	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchQuery()}}, true
	case "c":
		return []types.Action{types.OpenCartAction{}}, true
	case "i":
		if ctx.LoggedIn() {
			return nil, true
		}
		return []types.Action{types.OpenLoginAction{}}, true
	case "L":
		if !ctx.LoggedIn() {
			return nil, true
		}
		return []types.Action{types.LogoutAction{}}, true
	case "r":
		return []types.Action{types.OpenRegisterAction{}}, true
	case "v":
		return []types.Action{types.OpenSellAction{}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "H":
		return []types.Action{types.ShowHelpPagerAction{}}, true
	}
	return nil, false
}

func (m *NormalMode) homeKey(key string, ctx types.Context) ([]types.Action, bool) {
	switch key {
	case "tab":
		if ctx.GridFocused() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchQuery()}}, true
		}
		return []types.Action{types.FocusAction{Forward: true}}, true
	case "shift+tab":
		if ctx.CarouselFocused() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchQuery()}}, true
		}
		return []types.Action{types.FocusAction{Forward: false}}, true
	}

	if ctx.CarouselFocused() {
		if k, ok := carouselKeys[key]; ok {
			return []types.Action{types.CarouselKeyAction{Key: k}}, true
		}
		switch key {
		case " ", "p":
			return []types.Action{types.ToggleAutoplayAction{}}, true
		case "down", "j":
			return []types.Action{types.FocusAction{Forward: true}}, true
		}
		return nil, false
	}

	if ctx.GridFocused() {
		switch key {
		case "up", "k":
			return []types.Action{types.NavigateAction{Direction: "up"}}, true
		case "down", "j":
			return []types.Action{types.NavigateAction{Direction: "down"}}, true
		case "left", "h":
			return []types.Action{types.NavigateAction{Direction: "left"}}, true
		case "right", "l":
			return []types.Action{types.NavigateAction{Direction: "right"}}, true
		case "home", "g":
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		case "end", "G":
			return []types.Action{types.NavigateAction{Direction: "end"}}, true
		case "enter":
			return []types.Action{types.OpenProductAction{}}, true
		}
	}
	return nil, false
}

func (m *NormalMode) productKey(key string) ([]types.Action, bool) {
	switch key {
	case "+", "=", "right", "l":
		return []types.Action{types.QuantityAction{Delta: 1}}, true
	case "-", "left", "h":
		return []types.Action{types.QuantityAction{Delta: -1}}, true
	case "a", "enter":
		return []types.Action{types.AddToCartAction{}}, true
	case "d":
		return []types.Action{types.ShowDescriptionAction{}}, true
	}
	return nil, false
}

package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"mercauca/internal/ui/input/types"
)

// CartMode drives the cart popup
type CartMode struct{}

func NewCartMode() *CartMode {
	return &CartMode{}
}

func (m *CartMode) Name() string {
	return "cart"
}

func (m *CartMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *CartMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *CartMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "c", "q":
		return []types.Action{
			types.CloseCartAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "up", "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "down", "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "x", "delete":
		if ctx.CartItemCount() > 0 {
			return []types.Action{types.RemoveCartItemAction{}}, true
		}
	case "s", "tab":
		return []types.Action{types.ToggleShippingAction{}}, true
	case "enter":
		if ctx.CartItemCount() > 0 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeConfirm}}, true
		}
	}
	return nil, true
}

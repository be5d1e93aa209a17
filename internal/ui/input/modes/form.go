package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"mercauca/internal/ui/input/types"
)

// FormMode handles the login, register and sell forms. Keys it does not
// claim are forwarded to the focused field.
type FormMode struct{}

func NewFormMode() *FormMode {
	return &FormMode{}
}

func (m *FormMode) Name() string {
	return "form"
}

func (m *FormMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *FormMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *FormMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{
			types.BackAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "tab", "down":
		return []types.Action{types.FormFocusAction{Forward: true}}, true
	case "shift+tab", "up":
		return []types.Action{types.FormFocusAction{Forward: false}}, true
	case "enter", "ctrl+s":
		return []types.Action{types.SubmitFormAction{}}, true
	case "left", "right", " ":
		if ctx.SelectorFocused() {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			return []types.Action{types.CycleOptionAction{Delta: delta}}, true
		}
	}
	return []types.Action{types.UpdateFormAction{Msg: msg}}, true
}

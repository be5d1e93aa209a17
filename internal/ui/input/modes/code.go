package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mercauca/internal/ui/input/types"
)

// CodeMode reads the e-mail verification code during registration
type CodeMode struct {
	TextInputMode
}

func NewCodeMode(ti *textinput.Model) *CodeMode {
	return &CodeMode{
		TextInputMode: NewTextInputMode(types.ModeCode, "code", "Código: ", ti),
	}
}

func (m *CodeMode) Enter(ctx types.Context) []types.Action {
	m.TextInputMode.Enter(ctx)
	if m.textInput != nil {
		m.textInput.CharLimit = 6
		m.textInput.Placeholder = "000000"
	}
	return nil
}

func (m *CodeMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.CharLimit = 0
		m.textInput.Placeholder = ""
	}
	return m.TextInputMode.Exit(ctx)
}

func (m *CodeMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "enter":
		// The model leaves this mode once the code is accepted
		return []types.Action{types.SubmitTextAction{Text: m.value(), Mode: types.ModeCode}}, true
	case "ctrl+r":
		return []types.Action{types.ResendCodeAction{}}, true
	case "esc":
		return []types.Action{
			types.CancelTextAction{Mode: types.ModeCode},
			types.ChangeModeAction{Mode: types.ModeForm},
		}, true
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}

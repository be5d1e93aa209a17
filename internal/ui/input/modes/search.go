package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mercauca/internal/ui/input/types"
)

// SearchMode edits the top bar query. Results are fetched by the model as
// the text changes.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Buscar: ", ti),
	}
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "up", "ctrl+p":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "down", "ctrl+n":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "tab":
		return []types.Action{
			types.CancelTextAction{Mode: types.ModeSearch},
			types.FocusAction{Forward: true, FromSearch: true},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "shift+tab":
		return []types.Action{
			types.CancelTextAction{Mode: types.ModeSearch},
			types.FocusAction{Forward: false, FromSearch: true},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "enter":
		if ctx.ResultCount() == 0 {
			// Search right away instead of waiting for the debounce
			return []types.Action{types.SubmitTextAction{Text: m.value(), Mode: types.ModeSearch}}, true
		}
		return []types.Action{
			types.OpenProductAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}

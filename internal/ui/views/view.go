package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"mercauca/internal/domain"
	"mercauca/internal/media"
	"mercauca/internal/ui/forms"
	"mercauca/internal/ui/state"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int
	App    *state.AppState

	SearchInput     string
	SearchActive    bool
	Form            *forms.Form
	CodeOpen        bool
	CodeInput       string
	ConfirmOpen     bool
	Spinner         string
	HelpView        string
	AutoplayState   string
	CarouselFocused bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
	thumbs      map[string]string
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
		thumbs:      make(map[string]string),
	}
}

// Styles returns the renderer styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	if vs.App == nil {
		return ""
	}
	if vs.Width <= 0 {
		vs.Width = 80
	}
	if vs.Height <= 0 {
		vs.Height = 24
	}

	footer := r.renderFooter(vs)
	bodyHeight := vs.Height - TopbarHeight - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch vs.App.Screen {
	case state.ScreenProduct:
		body = r.renderProduct(vs, bodyHeight)
	case state.ScreenLogin, state.ScreenRegister, state.ScreenSell:
		body = r.renderForm(vs)
	default:
		body = r.renderHome(vs, bodyHeight)
	}
	body = fitHeight(body, bodyHeight)

	screen := lipgloss.JoinVertical(lipgloss.Left, r.renderTopbar(vs), "", body, footer)

	// Modals, innermost last
	switch {
	case vs.App.CheckoutSuccess:
		screen = r.popupRender.RenderPopupOverlay(screen, r.renderCheckoutSuccess(), vs.Height, vs.Width, r.styles.Popup)
	case vs.ConfirmOpen:
		screen = r.popupRender.RenderPopupOverlay(screen, r.renderConfirm(vs), vs.Height, vs.Width, r.styles.Popup)
	case vs.App.CartOpen:
		screen = r.popupRender.RenderPopupOverlay(screen, r.renderCart(vs), vs.Height, vs.Width, r.styles.Popup)
	case vs.CodeOpen:
		screen = r.popupRender.RenderPopupOverlay(screen, r.renderCodePopup(vs), vs.Height, vs.Width, r.styles.Popup)
	case vs.App.Feedback.Open:
		screen = r.popupRender.RenderPopupOverlay(screen, r.renderFeedback(vs), vs.Height, vs.Width, r.feedbackStyle(vs))
	case vs.App.ShowResults:
		screen = Overlay(screen, r.renderResults(vs), SearchColumn, 1, vs.Width, vs.Height)
	}
	return screen
}

// thumb renders and caches an image payload
func (r *Renderer) thumb(key, raw string, w, h int, alt string) string {
	k := fmt.Sprintf("%s/%dx%d/%d", key, w, h, len(raw))
	if s, ok := r.thumbs[k]; ok {
		return s
	}
	s := media.Render(raw, w, h, alt)
	r.thumbs[k] = s
	return s
}

func (r *Renderer) renderTopbar(vs ViewState) string {
	a := vs.App
	brand := r.styles.Brand.Render("MERCAUCA")

	query := vs.SearchInput
	if !vs.SearchActive {
		query = a.SearchQuery
		if query == "" {
			query = r.styles.Dim.Render("Buscar joyas, anillos, collares…")
		}
	}
	searchStyle := r.styles.Search
	if vs.SearchActive {
		searchStyle = r.styles.SearchFocused
	}
	search := searchStyle.Width(SearchWidth).Render("🔍 " + query)

	account := "No has iniciado sesión"
	if a.LoggedIn() {
		account = a.User.DisplayName()
		if account == "" {
			account = a.UserID
		}
	}
	right := r.styles.Badge.Render(fmt.Sprintf("🛒 %d", a.CartCount)) + " " + r.styles.Account.Render(account)

	left := brand + "  " + search
	gap := vs.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return truncate.String(left+strings.Repeat(" ", gap)+right, uint(vs.Width))
}

func (r *Renderer) renderFooter(vs ViewState) string {
	status := vs.App.StatusMessage
	if status == "" && vs.App.Screen == state.ScreenHome && vs.AutoplayState != "" {
		status = "carrusel: " + vs.AutoplayState
	}
	line := r.styles.Status.Render(truncate.String(status, uint(vs.Width)))
	if vs.HelpView == "" {
		return line
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, r.styles.Help.Render(vs.HelpView))
}

func (r *Renderer) renderResults(vs ViewState) string {
	a := vs.App
	width := SearchWidth + 4
	var lines []string
	switch {
	case a.Searching:
		lines = append(lines, r.styles.StatusLoading.Render(vs.Spinner+" Buscando…"))
	case len(a.SearchResults) == 0:
		lines = append(lines, r.styles.Dim.Render(fmt.Sprintf("Sin resultados para “%s”", a.SearchQuery)))
	default:
		for i, p := range a.SearchResults {
			if i >= MaxResults {
				break
			}
			row := fmt.Sprintf("%-*s %s", width-12, truncate.StringWithTail(p.Title, uint(width-12), "…"), domain.FormatPrice(float64(p.Price)))
			if i == a.ResultIndex {
				row = r.styles.HighlightBg.Render(r.styles.Highlight.Render("▸ " + row))
			} else {
				row = "  " + row
			}
			lines = append(lines, row)
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("241")).
		Render(strings.Join(lines, "\n"))
}

// fitHeight pads or cuts s to exactly h lines
func fitHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"mercauca/internal/domain"
	"mercauca/internal/ui/state"
)

const (
	detailImageW = 32
	detailImageH = 12
	descLines    = 6
)

func (r *Renderer) renderProduct(vs ViewState, height int) string {
	a := vs.App
	p := a.Product
	if a.ProductNotFound {
		return r.styles.StatusError.Render("Producto no encontrado.") + "\n\n" + r.styles.Dim.Render("esc: volver")
	}
	if a.ProductLoading && p.Title == "" {
		return r.styles.StatusLoading.Render(vs.Spinner + " Cargando producto…")
	}

	img := r.thumb("detail-"+p.ID.String(), p.Image(), detailImageW, detailImageH, "Vista previa producto")

	infoW := max(20, vs.Width-detailImageW-4)
	addLabel := "a: Agregar al carrito"
	if a.Adding {
		addLabel = vs.Spinner + " Agregando..."
	}

	lines := []string{
		r.styles.Title.Render(wordwrap.String(p.Title, infoW)),
		r.styles.Dim.Render("SKU " + p.SKU()),
		"",
		r.styles.Price.Render(domain.FormatPrice(float64(p.Price))),
		"",
		fmt.Sprintf("Cantidad  %s %s %s", r.styles.Button.Render("−"), r.styles.Highlight.Render(fmt.Sprintf("[ %d ]", a.Quantity)), r.styles.Button.Render("+")),
		"Total     " + r.styles.Price.Render(domain.FormatPrice(a.LineTotal())),
		"",
		r.styles.Button.Render(addLabel),
	}
	if a.ProductLoading {
		lines = append(lines, r.styles.StatusLoading.Render(vs.Spinner+" actualizando…"))
	}
	info := strings.Join(lines, "\n")

	top := lipgloss.JoinHorizontal(lipgloss.Top, img, "  ", lipgloss.NewStyle().Width(infoW).Render(info))

	desc := a.Description
	if desc == "" {
		desc = wordwrap.String(descriptionOrDefault(p), vs.Width)
	}
	descBlock := strings.Split(strings.Trim(desc, "\n"), "\n")
	more := ""
	if len(descBlock) > descLines {
		descBlock = descBlock[:descLines]
		more = r.styles.Dim.Render("d: ver descripción completa")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		"",
		r.styles.Subtitle.Bold(true).Render("Descripción"),
		strings.Join(descBlock, "\n"),
		more,
	)
}

func descriptionOrDefault(p domain.Product) string {
	if strings.TrimSpace(p.Description) == "" {
		return "Descripción no disponible por el momento."
	}
	return p.Description
}

func (r *Renderer) feedbackStyle(vs ViewState) lipgloss.Style {
	color := lipgloss.Color("78")
	if vs.App.Feedback.Kind == state.FeedbackError {
		color = lipgloss.Color("203")
	}
	return r.styles.Popup.BorderForeground(color)
}

func (r *Renderer) renderFeedback(vs ViewState) string {
	f := vs.App.Feedback
	icon := "✔"
	if f.Kind == state.FeedbackError {
		icon = "✖"
	}
	return r.styles.MessageStyle(f.Kind == state.FeedbackSuccess).Render(icon + "  " + f.Message)
}

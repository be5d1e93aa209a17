package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"mercauca/internal/domain"
)

const cartNameWidth = 28

func (r *Renderer) renderCart(vs ViewState) string {
	a := vs.App
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Tu carrito"))
	b.WriteString("\n\n")

	switch {
	case a.CartLoading:
		b.WriteString(r.styles.StatusLoading.Render(vs.Spinner + " Cargando carrito…"))
		return b.String()
	case a.CartError != "" && a.Cart == nil:
		b.WriteString(r.styles.StatusError.Render(a.CartError))
		b.WriteString("\n\n")
		b.WriteString(r.styles.Dim.Render("esc: cerrar"))
		return b.String()
	case a.Cart.Empty():
		b.WriteString(r.styles.Dim.Render("Tu carrito está vacío."))
		b.WriteString("\n\n")
		b.WriteString(r.styles.Dim.Render("esc: cerrar"))
		return b.String()
	}

	for i, item := range a.Cart.Items {
		name := truncate.StringWithTail(item.Name, cartNameWidth, "…")
		row := fmt.Sprintf("%-*s %-8s %2d × %9s = %9s",
			cartNameWidth, name, item.SKU(), item.Quantity,
			domain.FormatPrice(float64(item.UnitPrice)), domain.FormatPrice(item.LineTotal()))
		if i == a.CartIndex {
			b.WriteString(r.styles.HighlightBg.Render(r.styles.Highlight.Render("▸ " + row)))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, mode := range []domain.ShippingMode{domain.ShippingStore, domain.ShippingHome} {
		mark := "○"
		if a.Cart.Shipping == mode {
			mark = r.styles.DotActive.Render("●")
		}
		b.WriteString(fmt.Sprintf("%s %s\n", mark, mode.Label()))
	}
	b.WriteString("\n")

	shipping := "Gratis"
	if cost := a.Cart.ShippingCost(); cost > 0 {
		shipping = domain.FormatPrice(cost)
	}
	b.WriteString(totalLine("Subtotal", domain.FormatPrice(a.Cart.Subtotal())))
	b.WriteString(totalLine("Envío", shipping))
	b.WriteString(totalLine("Total", r.styles.Price.Render(domain.FormatPrice(a.Cart.Total()))))

	if a.CartError != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.StatusError.Render(a.CartError))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if a.CheckingOut {
		b.WriteString(r.styles.StatusLoading.Render(vs.Spinner + " Procesando..."))
	} else {
		b.WriteString(r.styles.Dim.Render("enter: Terminar pedido · x: eliminar · s: envío · esc: cerrar"))
	}
	return b.String()
}

func totalLine(label, value string) string {
	return fmt.Sprintf("%-10s %s\n", label, lipgloss.NewStyle().Align(lipgloss.Right).Width(12).Render(value))
}

func (r *Renderer) renderConfirm(vs ViewState) string {
	total := domain.FormatPrice(vs.App.Cart.Total())
	return strings.Join([]string{
		r.styles.Title.Render("Confirmar compra"),
		"",
		"Vas a realizar un pedido por " + r.styles.Price.Render(total) + ".",
		"¿Deseas continuar?",
		"",
		r.styles.Button.Render("[y] Sí, confirmar") + "   " + r.styles.Dim.Render("[n] Cancelar"),
	}, "\n")
}

func (r *Renderer) renderCheckoutSuccess() string {
	return strings.Join([]string{
		r.styles.StatusSuccess.Render("✔  ¡Compra realizada!"),
		"",
		"Te hemos enviado un correo con el resumen de tu pedido.",
	}, "\n")
}

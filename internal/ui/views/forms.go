package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const labelWidth = 20

func (r *Renderer) renderForm(vs ViewState) string {
	f := vs.Form
	if f == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(f.Title))
	b.WriteString("\n\n")

	for i, field := range f.Fields {
		label := lipgloss.NewStyle().Width(labelWidth).Render(field.Label)
		value := field.Display()
		if field.IsSelector() {
			value = "‹ " + value + " ›"
		}
		if i == f.Focus() {
			b.WriteString(r.styles.FieldFocused.Render("▸ " + label))
		} else {
			b.WriteString("  " + r.styles.Label.Render(label))
		}
		b.WriteString(value)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	submit := f.Submit
	if vs.App.Submitting {
		submit = vs.Spinner + " " + submitting(f.Submit)
	}
	b.WriteString(r.styles.Button.Render("[enter] " + submit))
	b.WriteString("\n\n")

	if vs.App.FormMessage != "" {
		b.WriteString(r.styles.MessageStyle(vs.App.FormSuccess).Render(vs.App.FormMessage))
		b.WriteString("\n")
	}
	b.WriteString(r.styles.Dim.Render("tab: siguiente campo · ←/→: cambiar opción · esc: volver"))
	return b.String()
}

func submitting(label string) string {
	switch label {
	case "Entrar":
		return "Entrando..."
	case "Enviar código":
		return "Enviando código..."
	case "Publicar":
		return "Publicando producto…"
	}
	return "Procesando..."
}

func (r *Renderer) renderCodePopup(vs ViewState) string {
	lines := []string{
		r.styles.Title.Render("Verifica tu correo"),
		"",
		"Código de 6 dígitos enviado a " + r.styles.Account.Render(vs.App.CodeEmail),
		"",
		r.styles.SearchFocused.Width(10).Render(vs.CodeInput),
		"",
	}
	if vs.App.CodeMessage != "" {
		ok := strings.HasPrefix(vs.App.CodeMessage, "✅")
		lines = append(lines, r.styles.MessageStyle(ok).Render(vs.App.CodeMessage), "")
	}
	if vs.App.Submitting {
		lines = append(lines, r.styles.StatusLoading.Render(vs.Spinner+" Verificando..."))
	} else {
		lines = append(lines, r.styles.Dim.Render("enter: Verificar código · ctrl+r: Reenviar código · esc: cancelar"))
	}
	return strings.Join(lines, "\n")
}

package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Inicio", []helpEntry{
		{"tab / shift+tab", "Mover el foco: búsqueda, carrusel, productos"},
		{"esc", "Quitar el foco"},
	}},
	{"Carrusel (con foco)", []helpEntry{
		{"←/→, h/l", "Diapositiva anterior / siguiente"},
		{"inicio/fin, g/G", "Primera / última diapositiva"},
		{"espacio, p", "Pausar / reanudar la reproducción"},
		{"ratón", "Pasar encima pausa, clic en ◀ ▶ o en los puntos navega"},
	}},
	{"Productos", []helpEntry{
		{"↑↓←→, hjkl", "Moverse por la cuadrícula"},
		{"enter", "Ver producto"},
		{"+ / -", "Cambiar la cantidad"},
		{"a", "Agregar al carrito"},
		{"d", "Ver la descripción completa"},
	}},
	{"Búsqueda", []helpEntry{
		{"/", "Buscar joyas, anillos, collares…"},
		{"↑/↓", "Elegir resultado"},
		{"enter", "Abrir resultado"},
		{"esc", "Cerrar resultados"},
	}},
	{"Carrito", []helpEntry{
		{"c", "Abrir el carrito"},
		{"x", "Eliminar artículo"},
		{"s", "Cambiar el envío"},
		{"enter", "Terminar pedido"},
	}},
	{"Cuenta", []helpEntry{
		{"i", "Iniciar sesión"},
		{"L", "Cerrar sesión"},
		{"r", "Registrarse"},
		{"v", "Vender un producto"},
	}},
	{"Otros", []helpEntry{
		{"?", "Mostrar u ocultar la ayuda"},
		{"H", "Esta ayuda"},
		{"q", "Salir"},
	}},
}

// RenderHelpContent generates help content with colors for the pager
func RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(18)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("MercaUca - Ayuda"))
	help.WriteString("\n")
	for _, s := range helpSections {
		help.WriteString(sectionStyle.Render(s.title))
		help.WriteString("\n")
		for _, e := range s.entries {
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(e.keys), descStyle.Render(e.desc)))
		}
	}
	return strings.TrimRight(help.String(), "\n")
}

// renderMarkdown renders a product description for the terminal. The raw
// text is returned when glamour cannot render it.
func renderMarkdown(text string, width int) string {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// PagerOps runs the ov pager over the TUI
type PagerOps struct {
	program *tea.Program
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{program: program}
}

// Show displays content using the ov pager
func (h *PagerOps) Show(content string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Give ov time to leave the alternate screen
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

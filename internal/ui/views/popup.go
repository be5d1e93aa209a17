package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay draws popupContent centred over mainContent. The base
// is greyed out so the modal stands out.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	x := (width - modalW) / 2
	y := (height - modalH) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return Overlay(mainContent, styledPopup, x, y, width, height)
}

// Overlay places top over base at column x, row y. Base lines under the
// modal keep their text left and right of it, greyed out.
func Overlay(base, top string, x, y, width, height int) string {
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	topLines := strings.Split(top, "\n")
	topW := lipgloss.Width(top)

	out := make([]string, len(baseLines))
	for i, line := range baseLines {
		plain := stripANSI(line)
		j := i - y
		if j < 0 || j >= len(topLines) {
			out[i] = grey(plain)
			continue
		}
		left := padRight(runewidth.Truncate(plain, x, ""), x)
		right := skipColumns(plain, x+topW)
		if width > 0 {
			right = runewidth.Truncate(right, max(0, width-x-topW), "")
		}
		out[i] = grey(left) + padRight(topLines[j], topW) + grey(right)
	}
	return strings.Join(out, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;:]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func grey(plain string) string {
	if plain == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(plain)
}

// skipColumns drops the first n display columns of a plain string
func skipColumns(plain string, n int) string {
	w := 0
	for i, r := range plain {
		if w >= n {
			return plain[i:]
		}
		w += runewidth.RuneWidth(r)
	}
	return ""
}

func padRight(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

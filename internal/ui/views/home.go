package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"mercauca/internal/domain"
	"mercauca/internal/ui/state"
)

const (
	// TopbarHeight is the top bar plus the blank line under it
	TopbarHeight = 2
	// SearchColumn is where the search box starts in the top bar
	SearchColumn = 10
	SearchWidth  = 36
	MaxResults   = 8

	slideRows = 8
	// CarouselHeight counts the border, slide rows and the dots row
	CarouselHeight = slideRows + 3
	buttonWidth    = 3
	imageWidth     = 16

	CardWidth  = 22
	cardGap    = 1
	cardImageH = 4
	// card border, image, title and price
	cardHeight = cardImageH + 4
)

// Rect is a screen region in cells
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell at x, y lies in r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// CarouselLayout is where the carousel parts are drawn, for mouse hit tests
type CarouselLayout struct {
	Area Rect
	Prev Rect
	Next Rect
	Dots []Rect
}

// LayoutCarousel computes the carousel geometry for a terminal width and
// slide count. It matches what renderCarousel draws.
func LayoutCarousel(width, slides int) CarouselLayout {
	inner := width - 2
	l := CarouselLayout{
		Area: Rect{X: 0, Y: TopbarHeight, W: width, H: CarouselHeight},
		Prev: Rect{X: 1, Y: TopbarHeight + 1, W: buttonWidth, H: slideRows},
		Next: Rect{X: 1 + inner - buttonWidth, Y: TopbarHeight + 1, W: buttonWidth, H: slideRows},
	}
	dotsW := dotsWidth(slides)
	start := 1 + max(0, (inner-dotsW)/2)
	for i := 0; i < slides; i++ {
		l.Dots = append(l.Dots, Rect{X: start + i*2, Y: TopbarHeight + 1 + slideRows, W: 1, H: 1})
	}
	return l
}

func dotsWidth(n int) int {
	if n == 0 {
		return 0
	}
	return n*2 - 1
}

// GridColumns returns how many product cards fit in one row
func GridColumns(width int) int {
	cols := (width + cardGap) / (CardWidth + 2 + cardGap)
	if cols < 1 {
		return 1
	}
	return cols
}

func (r *Renderer) renderHome(vs ViewState, height int) string {
	carousel := r.renderCarousel(vs)
	title := r.styles.Title.Render("Novedades")

	gridHeight := height - lipgloss.Height(carousel) - 1
	var grid string
	switch {
	case vs.App.HomeLoading:
		grid = r.styles.StatusLoading.Render(vs.Spinner + " Cargando productos…")
	case vs.App.HomeError != "":
		grid = r.styles.StatusError.Render(vs.App.HomeError)
	case len(vs.App.Products) == 0:
		grid = r.styles.Dim.Render("No hay productos por el momento.")
	default:
		grid = r.renderGrid(vs, gridHeight)
	}
	return lipgloss.JoinVertical(lipgloss.Left, carousel, title, grid)
}

func (r *Renderer) renderCarousel(vs ViewState) string {
	a := vs.App
	inner := vs.Width - 2
	slideW := inner - 2*buttonWidth
	if slideW < 1 {
		slideW = 1
	}

	var slide string
	if len(a.Slides) > 0 {
		i := a.CurrentSlide()
		slide = r.renderSlide(i, a.Slides[i], slideW)
	}
	slide = lipgloss.NewStyle().Width(slideW).Height(slideRows).MaxHeight(slideRows).Render(slide)

	prev := lipgloss.Place(buttonWidth, slideRows, lipgloss.Center, lipgloss.Center, r.styles.Button.Render("◀"))
	next := lipgloss.Place(buttonWidth, slideRows, lipgloss.Center, lipgloss.Center, r.styles.Button.Render("▶"))
	row := lipgloss.JoinHorizontal(lipgloss.Top, prev, slide, next)

	var dots strings.Builder
	dots.WriteString(strings.Repeat(" ", max(0, (inner-dotsWidth(len(a.Slides)))/2)))
	for i := range a.Slides {
		if i > 0 {
			dots.WriteString(" ")
		}
		if i < len(a.DotSelected) && a.DotSelected[i] {
			dots.WriteString(r.styles.DotActive.Render("●"))
		} else {
			dots.WriteString(r.styles.Dot.Render("○"))
		}
	}
	dotsLine := padRight(dots.String(), inner)

	style := r.styles.Carousel
	if vs.CarouselFocused {
		style = r.styles.CarouselFocus
	}
	return style.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Left, row, dotsLine))
}

func (r *Renderer) renderSlide(i int, s state.SlideState, width int) string {
	img := r.thumb(fmt.Sprintf("slide-%d", i), s.Photo, imageWidth, slideRows, "🖼")

	textW := width - imageWidth - 2
	if textW < 4 {
		return img
	}
	bg := lipgloss.Color(s.Slide.Color)
	block := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color("255")).Width(textW).Height(slideRows).Padding(1, 2)
	text := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(truncate.StringWithTail(s.Slide.Title, uint(max(1, textW-4)), "…")),
		wordwrap.String(s.Slide.Text, max(1, textW-4)),
		"",
		lipgloss.NewStyle().Faint(true).Render(s.Label),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, img, "  ", block.Render(text))
}

func (r *Renderer) renderGrid(vs ViewState, height int) string {
	a := vs.App
	cols := GridColumns(vs.Width)
	visibleRows := max(1, height/cardHeight)
	selectedRow := a.GridIndex / cols
	firstRow := 0
	if selectedRow >= visibleRows {
		firstRow = selectedRow - visibleRows + 1
	}

	var rows []string
	for row := firstRow; row < firstRow+visibleRows; row++ {
		var cards []string
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(a.Products) {
				break
			}
			selected := vs.App.Focus == state.FocusGrid && i == a.GridIndex
			cards = append(cards, r.renderCard(a.Products[i], selected))
			if col < cols-1 {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
		}
		if len(cards) == 0 {
			break
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

func (r *Renderer) renderCard(p domain.Product, selected bool) string {
	style := r.styles.Card
	if selected {
		style = r.styles.CardSelected
	}
	img := r.thumb("p-"+p.ID.String(), p.Image(), CardWidth, cardImageH, "sin foto")
	title := truncate.StringWithTail(p.Title, CardWidth, "…")
	price := r.styles.Price.Render(domain.FormatPrice(float64(p.Price)))
	return style.Width(CardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, img, title, price))
}

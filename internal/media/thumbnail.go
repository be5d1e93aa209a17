package media

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Thumbnail renders img as terminal art of width x height cells. Each cell
// is an upper half block carrying two vertically stacked pixels.
func Thumbnail(img image.Image, width, height int) string {
	if img == nil || width <= 0 || height <= 0 {
		return ""
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return ""
	}

	rows := height * 2
	var sb strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			top := sample(img, b, x, y*2, width, rows)
			bottom := sample(img, b, x, y*2+1, width, rows)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(top))).
				Background(lipgloss.Color(hex(bottom))).
				Render("▀"))
		}
		if y < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Placeholder renders a neutral box of the same size as a thumbnail
func Placeholder(width, height int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(lipgloss.Color("241")).
		Background(lipgloss.Color("236")).
		Render(text)
}

// Render draws the image in raw, or a placeholder showing alt when the
// payload is empty or cannot be decoded
func Render(raw string, width, height int, alt string) string {
	if raw == "" {
		return Placeholder(width, height, alt)
	}
	img, _, err := Decode(raw)
	if err != nil {
		return Placeholder(width, height, alt)
	}
	return Thumbnail(img, width, height)
}

// nearest neighbour sampling
func sample(img image.Image, b image.Rectangle, x, y, w, h int) color.Color {
	sx := b.Min.X + x*b.Dx()/w
	sy := b.Min.Y + y*b.Dy()/h
	return img.At(sx, sy)
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Brand         lipgloss.Style
	Search        lipgloss.Style
	SearchFocused lipgloss.Style
	Badge         lipgloss.Style
	Account       lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Price         lipgloss.Style
	Carousel      lipgloss.Style
	CarouselFocus lipgloss.Style
	Button        lipgloss.Style
	DotActive     lipgloss.Style
	Dot           lipgloss.Style
	Card          lipgloss.Style
	CardSelected  lipgloss.Style
	Highlight     lipgloss.Style
	HighlightBg   lipgloss.Style
	Popup         lipgloss.Style
	Label         lipgloss.Style
	FieldFocused  lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Brand: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("78")),
		Search: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		SearchFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236")),
		Badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("214")).
			Padding(0, 1),
		Account: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Dim:      lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Help:  lipgloss.NewStyle().Faint(true),
		Price: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		Carousel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")),
		CarouselFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")),
		Button:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		DotActive: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Dot:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("214")),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		Label:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		FieldFocused:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

// MessageStyle picks the colour of a form or feedback message
func (s *Styles) MessageStyle(success bool) lipgloss.Style {
	if success {
		return s.StatusSuccess
	}
	return s.StatusError
}

package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"mercauca/internal/ui/state"
)

// keyMap feeds the footer help. The bindings are documentation only; key
// dispatch lives in the input modes.
type keyMap struct {
	screen state.Screen

	Search   key.Binding
	Focus    key.Binding
	Slide    key.Binding
	Autoplay key.Binding
	Move     key.Binding
	Open     key.Binding
	Quantity key.Binding
	Add      key.Binding
	Describe key.Binding
	Cart     key.Binding
	Login    key.Binding
	Logout   key.Binding
	Register key.Binding
	Sell     key.Binding
	Back     key.Binding
	Help     key.Binding
	Pager    key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "buscar")),
		Focus:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "mover foco")),
		Slide:    key.NewBinding(key.WithKeys("left", "right", "home", "end"), key.WithHelp("←/→ inicio/fin", "diapositiva")),
		Autoplay: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("espacio", "pausar/reanudar")),
		Move:     key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("↑↓←→", "mover")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ver producto")),
		Quantity: key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "cantidad")),
		Add:      key.NewBinding(key.WithKeys("a", "enter"), key.WithHelp("a", "agregar al carrito")),
		Describe: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "descripción")),
		Cart:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "carrito")),
		Login:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "iniciar sesión")),
		Logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "cerrar sesión")),
		Register: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "registrarse")),
		Sell:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "vender")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "volver")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ayuda")),
		Pager:    key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "ayuda completa")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "salir")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	switch k.screen {
	case state.ScreenProduct:
		return []key.Binding{k.Quantity, k.Add, k.Describe, k.Back, k.Help}
	case state.ScreenHome:
		return []key.Binding{k.Search, k.Focus, k.Cart, k.Help, k.Quit}
	default:
		return []key.Binding{k.Back, k.Help}
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Focus, k.Slide, k.Autoplay},
		{k.Move, k.Open, k.Quantity, k.Add, k.Describe},
		{k.Cart, k.Login, k.Logout, k.Register, k.Sell},
		{k.Back, k.Help, k.Pager, k.Quit},
	}
}

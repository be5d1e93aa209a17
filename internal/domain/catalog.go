package domain

// Option is an id/name pair offered by the sell form selectors
type Option struct {
	ID   string
	Name string
}

func (o Option) String() string {
	return o.Name + " (" + o.ID + ")"
}

var Conditions = []Option{
	{ID: "C001", Name: "Nuevo"},
	{ID: "C002", Name: "Usado - Como nuevo"},
	{ID: "C003", Name: "Usado - Buen estado"},
	{ID: "C004", Name: "Usado - Regular"},
	{ID: "C005", Name: "Reacondicionado"},
}

var Categories = []Option{
	{ID: "CAT001", Name: "Relojes"},
	{ID: "CAT002", Name: "Joyería"},
	{ID: "CAT003", Name: "Electrónica"},
	{ID: "CAT004", Name: "Moda"},
	{ID: "CAT005", Name: "Hogar y decoración"},
	{ID: "CATS01", Name: "Slider y Ofertas"},
}

const (
	DefaultCondition = "C001"
	DefaultCategory  = "CAT001"
)

// FindOption returns the option with the given id
func FindOption(options []Option, id string) (Option, bool) {
	for _, o := range options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// OptionIndex returns the position of id in options, or 0 when missing
func OptionIndex(options []Option, id string) int {
	for i, o := range options {
		if o.ID == id {
			return i
		}
	}
	return 0
}

// Slide is the static copy of one featured carousel slide
type Slide struct {
	Title string
	Text  string
	Alt   string
	Color string
}

// FeaturedSlides are the three home page slides. Their images come from the
// slider endpoint in the same order.
var FeaturedSlides = []Slide{
	{
		Title: "Compra y vende artículos",
		Text:  "Desde la comodidad de tu casa.",
		Alt:   "Reloj Bulova en primer plano sobre superficie clara",
		Color: "#2e7d32",
	},
	{
		Title: "Lujo que habla por ti",
		Text:  "Joyas únicas en oro y plata.",
		Alt:   "Anillos de oro brillando sobre fondo oscuro",
		Color: "#7b1f3a",
	},
	{
		Title: "Ofertas de temporada",
		Text:  "Descuentos limitados.",
		Alt:   "Reloj con accesorios y caja de regalo",
		Color: "#1f4e8c",
	},
}

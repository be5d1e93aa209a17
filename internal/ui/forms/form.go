// Package forms holds the multi-field forms of the login, register and
// sell pages.
package forms

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mercauca/internal/domain"
)

// Field is either a text input or, when Options is set, an option picker
type Field struct {
	Key      string
	Label    string
	Input    textinput.Model
	Options  []domain.Option
	Selected int
}

// IsSelector reports whether the field picks from a fixed list
func (f *Field) IsSelector() bool {
	return len(f.Options) > 0
}

// Value returns the text or the selected option id
func (f *Field) Value() string {
	if f.IsSelector() {
		if f.Selected < 0 || f.Selected >= len(f.Options) {
			return ""
		}
		return f.Options[f.Selected].ID
	}
	return f.Input.Value()
}

// Display returns what the view shows for the field
func (f *Field) Display() string {
	if f.IsSelector() {
		if f.Selected < 0 || f.Selected >= len(f.Options) {
			return ""
		}
		return f.Options[f.Selected].String()
	}
	return f.Input.View()
}

// Form is an ordered set of fields with one focused at a time
type Form struct {
	Title  string
	Submit string
	Fields []*Field
	focus  int
}

// Spec describes one field when building a form
type Spec struct {
	Key         string
	Label       string
	Placeholder string
	Password    bool
	CharLimit   int
	Options     []domain.Option
	Default     string
}

// New builds a form and focuses its first field
func New(title, submit string, specs ...Spec) *Form {
	f := &Form{Title: title, Submit: submit}
	for _, s := range specs {
		field := &Field{Key: s.Key, Label: s.Label, Options: s.Options}
		if field.IsSelector() {
			field.Selected = domain.OptionIndex(s.Options, s.Default)
		} else {
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = s.Placeholder
			ti.CharLimit = s.CharLimit
			if s.Password {
				ti.EchoMode = textinput.EchoPassword
				ti.EchoCharacter = '•'
			}
			ti.SetValue(s.Default)
			field.Input = ti
		}
		f.Fields = append(f.Fields, field)
	}
	f.setFocus(0)
	return f
}

// Login is the sign-in form
func Login() *Form {
	return New("Iniciar sesión", "Entrar",
		Spec{Key: "idUsuario", Label: "Usuario", Placeholder: "tu usuario"},
		Spec{Key: "password", Label: "Contraseña", Password: true},
	)
}

// Register is the account creation form
func Register() *Form {
	return New("Crear cuenta", "Enviar código",
		Spec{Key: "nombre", Label: "Nombre"},
		Spec{Key: "idUsuario", Label: "Usuario"},
		Spec{Key: "email", Label: "Correo electrónico", Placeholder: "correo@ejemplo.com"},
		Spec{Key: "telefono", Label: "Teléfono"},
		Spec{Key: "password", Label: "Contraseña", Password: true},
	)
}

// Sell is the product listing form
func Sell() *Form {
	return New("Vender un artículo", "Publicar",
		Spec{Key: "titulo", Label: "Título"},
		Spec{Key: "descripcion", Label: "Descripción"},
		Spec{Key: "marca", Label: "Marca"},
		Spec{Key: "idCondicion", Label: "Condición", Options: domain.Conditions, Default: domain.DefaultCondition},
		Spec{Key: "idCategoria", Label: "Categoría", Options: domain.Categories, Default: domain.DefaultCategory},
		Spec{Key: "precio", Label: "Precio", Placeholder: "0.00"},
		Spec{Key: "imagen", Label: "Imagen (ruta)", Placeholder: "/ruta/a/foto.jpg"},
	)
}

// Focus returns the index of the focused field
func (f *Form) Focus() int {
	return f.focus
}

// Focused returns the focused field
func (f *Form) Focused() *Field {
	if len(f.Fields) == 0 {
		return nil
	}
	return f.Fields[f.focus]
}

// Move shifts focus, wrapping around the field list
func (f *Form) Move(forward bool) tea.Cmd {
	n := len(f.Fields)
	if n == 0 {
		return nil
	}
	next := f.focus - 1
	if forward {
		next = f.focus + 1
	}
	return f.setFocus(((next % n) + n) % n)
}

func (f *Form) setFocus(i int) tea.Cmd {
	var cmd tea.Cmd
	for j, field := range f.Fields {
		if field.IsSelector() {
			continue
		}
		if j == i {
			cmd = field.Input.Focus()
		} else {
			field.Input.Blur()
		}
	}
	f.focus = i
	return cmd
}

// Cycle moves the focused selector by delta
func (f *Form) Cycle(delta int) {
	field := f.Focused()
	if field == nil || !field.IsSelector() {
		return
	}
	n := len(field.Options)
	field.Selected = (((field.Selected + delta) % n) + n) % n
}

// SelectorFocused reports whether the focused field is an option picker
func (f *Form) SelectorFocused() bool {
	field := f.Focused()
	return field != nil && field.IsSelector()
}

// Update forwards msg to the focused text field
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	field := f.Focused()
	if field == nil || field.IsSelector() {
		return nil
	}
	var cmd tea.Cmd
	field.Input, cmd = field.Input.Update(msg)
	return cmd
}

// Value returns the value of the field with the given key
func (f *Form) Value(key string) string {
	for _, field := range f.Fields {
		if field.Key == key {
			return field.Value()
		}
	}
	return ""
}

// Set replaces the value of a text field
func (f *Form) Set(key, value string) {
	for _, field := range f.Fields {
		if field.Key == key && !field.IsSelector() {
			field.Input.SetValue(value)
		}
	}
}

// Reset clears text fields and returns focus to the first one
func (f *Form) Reset() {
	for _, field := range f.Fields {
		if !field.IsSelector() {
			field.Input.Reset()
		}
	}
	f.setFocus(0)
}

// Credentials reads a login form
func (f *Form) Credentials() domain.Credentials {
	return domain.Credentials{
		UserID:   f.Value("idUsuario"),
		Password: f.Value("password"),
	}
}

// Registration reads a register form
func (f *Form) Registration() domain.Registration {
	return domain.Registration{
		Name:     f.Value("nombre"),
		UserID:   f.Value("idUsuario"),
		Email:    f.Value("email"),
		Phone:    f.Value("telefono"),
		Password: f.Value("password"),
	}
}

// ProductForm reads a sell form for the given seller
func (f *Form) ProductForm(userID string) domain.ProductForm {
	p := domain.NewProductForm(userID)
	p.Title = f.Value("titulo")
	p.Description = f.Value("descripcion")
	p.Brand = f.Value("marca")
	p.ConditionID = f.Value("idCondicion")
	p.CategoryID = f.Value("idCategoria")
	p.Price = f.Value("precio")
	p.ImagePath = f.Value("imagen")
	return p
}

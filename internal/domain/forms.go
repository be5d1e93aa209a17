package domain

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	MinPasswordLength = 6
	CodeLength        = 6
)

// ValidationError reports the first invalid field of a form. Message is
// ready to be shown to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// ProductForm is the seller listing form
type ProductForm struct {
	UserID      string
	Title       string
	Description string
	Brand       string
	ConditionID string
	CategoryID  string
	Price       string
	ImagePath   string
}

// NewProductForm returns an empty form with the default selectors
func NewProductForm(userID string) ProductForm {
	return ProductForm{
		UserID:      userID,
		ConditionID: DefaultCondition,
		CategoryID:  DefaultCategory,
	}
}

// PriceValue parses the price field
func (f ProductForm) PriceValue() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
}

func (f ProductForm) Validate() error {
	if strings.TrimSpace(f.UserID) == "" {
		return invalid("idUsuario", "No se encontró el ID de usuario. Inicia sesión.")
	}
	if strings.TrimSpace(f.Title) == "" {
		return invalid("titulo", "El título es obligatorio.")
	}
	if _, ok := FindOption(Conditions, f.ConditionID); !ok {
		return invalid("idCondicion", "Condición inválida.")
	}
	if _, ok := FindOption(Categories, f.CategoryID); !ok {
		return invalid("idCategoria", "Categoría inválida.")
	}
	price, err := f.PriceValue()
	if err != nil || price <= 0 {
		return invalid("precio", "El precio debe ser un número mayor que cero.")
	}
	if strings.TrimSpace(f.ImagePath) == "" {
		return invalid("imagen", "Debes seleccionar una imagen.")
	}
	return nil
}

// Credentials is the login form
type Credentials struct {
	UserID   string
	Password string
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return invalid("idUsuario", "Ingresa tu usuario.")
	}
	if len([]rune(c.Password)) < MinPasswordLength {
		return invalid("password", "La contraseña debe tener al menos 6 caracteres.")
	}
	return nil
}

// Registration is the sign-up form
type Registration struct {
	Name     string
	UserID   string
	Email    string
	Phone    string
	Password string
}

// ValidateForCode checks what is needed before a verification code is sent
func (r Registration) ValidateForCode() error {
	if strings.TrimSpace(r.Email) == "" {
		return invalid("correo", "⚠️ Debes ingresar un correo electrónico.")
	}
	return nil
}

// Validate checks the whole form
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("nombre", "Ingresa tu nombre completo.")
	}
	if strings.TrimSpace(r.UserID) == "" {
		return invalid("usuario", "Ingresa un usuario.")
	}
	if err := r.ValidateForCode(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Phone) == "" {
		return invalid("phone", "Ingresa tu número telefónico.")
	}
	if len([]rune(r.Password)) < MinPasswordLength {
		return invalid("password", "La contraseña debe tener al menos 6 caracteres.")
	}
	return nil
}

// ValidateCode checks a verification code: exactly six digits
func ValidateCode(code string) error {
	code = strings.TrimSpace(code)
	if len(code) != CodeLength {
		return invalid("codigo", "Ingresa el código de 6 dígitos.")
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return invalid("codigo", "Ingresa el código de 6 dígitos.")
		}
	}
	return nil
}

package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyCart is returned when checking out a cart without items
var ErrEmptyCart = errors.New("cart is empty")

// ID is a backend identifier. The backend sends ids as numbers or strings
// depending on the endpoint, so both are accepted.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Amount is a price. Missing, null and non-numeric values read as zero.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*a = 0
			return nil
		}
		*a = Amount(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*a = 0
		return nil
	}
	*a = Amount(v)
	return nil
}

// FormatPrice renders a price the way the storefront shows it: "12.50$"
func FormatPrice(v float64) string {
	return fmt.Sprintf("%.2f$", v)
}

// Product is a catalog entry as returned by the novedades, search and
// detail endpoints
type Product struct {
	ID          ID     `json:"idProducto"`
	VariantID   ID     `json:"idProductoVariante,omitempty"`
	Title       string `json:"tituloProducto"`
	Price       Amount `json:"precio"`
	Photo       string `json:"fotoBase64,omitempty"`
	PhotoAlt    string `json:"foto,omitempty"`
	Description string `json:"descripcion,omitempty"`
}

// Image returns whichever photo field the endpoint populated
func (p Product) Image() string {
	if p.Photo != "" {
		return p.Photo
	}
	return p.PhotoAlt
}

// CartVariantID is the id sent when adding the product to a cart
func (p Product) CartVariantID() ID {
	if p.VariantID != "" {
		return p.VariantID
	}
	return p.ID
}

func (p Product) SKU() string {
	return "#" + string(p.CartVariantID())
}

// Merge fills fields missing from p with the ones in detail
func (p Product) Merge(detail Product) Product {
	if p.ID == "" {
		p.ID = detail.ID
	}
	if p.VariantID == "" {
		p.VariantID = detail.VariantID
	}
	if p.Title == "" {
		p.Title = detail.Title
	}
	if p.Price == 0 {
		p.Price = detail.Price
	}
	if p.Image() == "" {
		p.Photo = detail.Image()
	}
	if detail.Description != "" {
		p.Description = detail.Description
	}
	return p
}

// SliderPhoto is one featured image for the home carousel
type SliderPhoto struct {
	ID    ID     `json:"idProducto,omitempty"`
	Photo string `json:"fotoBase64"`
}

// CartItem is one row of a user's cart
type CartItem struct {
	ID        ID     `json:"idProducto"`
	Name      string `json:"tituloProducto"`
	UnitPrice Amount `json:"precio"`
	Quantity  int    `json:"cantidad"`
	Image     string `json:"fotoBase64,omitempty"`
}

func (i CartItem) SKU() string {
	if i.ID == "" {
		return "#N/A"
	}
	return "#" + string(i.ID)
}

func (i CartItem) LineTotal() float64 {
	return float64(i.UnitPrice) * float64(i.Quantity)
}

// ShippingMode is how an order reaches the buyer
type ShippingMode string

const (
	ShippingStore ShippingMode = "store"
	ShippingHome  ShippingMode = "home"
)

// Label returns the option text shown in the cart
func (m ShippingMode) Label() string {
	if m == ShippingHome {
		return "Entrega en casa (Alrededor de 2 – 4 dias)"
	}
	return "Retirar en tienda (Listo en 20 min)"
}

// Toggle switches between the two modes
func (m ShippingMode) Toggle() ShippingMode {
	if m == ShippingHome {
		return ShippingStore
	}
	return ShippingHome
}

// Cart holds the items and totals shown in the cart popup
type Cart struct {
	Items            []CartItem
	Shipping         ShippingMode
	HomeShippingCost float64
}

// NewCart creates a cart with store pickup selected
func NewCart(items []CartItem, homeShippingCost float64) *Cart {
	return &Cart{
		Items:            items,
		Shipping:         ShippingStore,
		HomeShippingCost: homeShippingCost,
	}
}

func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}

func (c *Cart) Subtotal() float64 {
	if c == nil {
		return 0
	}
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// ShippingCost is zero for store pickup
func (c *Cart) ShippingCost() float64 {
	if c == nil || c.Shipping != ShippingHome {
		return 0
	}
	return c.HomeShippingCost
}

func (c *Cart) Total() float64 {
	return c.Subtotal() + c.ShippingCost()
}

// Remove drops the item with the given id and reports whether it was present
func (c *Cart) Remove(id ID) bool {
	if c == nil {
		return false
	}
	for i, item := range c.Items {
		if item.ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// CanCheckout returns ErrEmptyCart when there is nothing to order
func (c *Cart) CanCheckout() error {
	if c.Empty() {
		return ErrEmptyCart
	}
	return nil
}

// User is the account stored with a session
type User struct {
	ID      string `json:"idUsuario,omitempty"`
	BuyerID string `json:"idComprador,omitempty"`
	Name    string `json:"nombreUsuario,omitempty"`
	Email   string `json:"emailUsuario,omitempty"`
	Phone   string `json:"telefonoUsuario,omitempty"`
}

// Key returns the id the cart endpoints expect
func (u User) Key() string {
	if u.ID != "" {
		return u.ID
	}
	return u.BuyerID
}

// DisplayName is the label shown in the top bar
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Key()
}

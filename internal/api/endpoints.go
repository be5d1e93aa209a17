package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"mercauca/internal/domain"
)

// SliderPhotos returns the featured carousel images
func (c *Client) SliderPhotos(ctx context.Context) ([]domain.SliderPhoto, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: "/api/Novedades/productosSlider"})
	if err != nil {
		return nil, err
	}
	return decodeList[domain.SliderPhoto](data), nil
}

// NewArrivals returns the products of the home page grid
func (c *Client) NewArrivals(ctx context.Context) ([]domain.Product, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: "/api/Novedades/novedades"})
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Product](data), nil
}

// Search returns the products matching query
func (c *Client) Search(ctx context.Context, query string) ([]domain.Product, error) {
	path := "/api/Search/buscar?" + url.Values{"query": {query}}.Encode()
	data, err := c.do(ctx, request{method: http.MethodGet, path: path})
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Product](data), nil
}

// Product returns the detail of a single product
func (c *Client) Product(ctx context.Context, id domain.ID) (domain.Product, error) {
	var p domain.Product
	data, err := c.do(ctx, request{method: http.MethodGet, path: "/api/Productos/" + url.PathEscape(id.String())})
	if err != nil {
		return p, err
	}
	err = decode(data, &p)
	return p, err
}

// Cart returns the items in the user's cart. Items without an id are
// numbered by position.
func (c *Client) Cart(ctx context.Context, token, userID string) ([]domain.CartItem, error) {
	data, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/Carrito/" + url.PathEscape(userID),
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	var items []domain.CartItem
	if err := decode(data, &items); err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = domain.ID(strconv.Itoa(i))
		}
	}
	return items, nil
}

// CartCount returns how many items the user's cart holds. Bodies that are
// neither a number nor a numeric string count as zero.
func (c *Client) CartCount(ctx context.Context, token, userID string) (int, error) {
	data, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/Carrito/cantidad-articulos/" + url.PathEscape(userID),
		token:  token,
	})
	if err != nil {
		return 0, err
	}
	return parseCount(data), nil
}

func parseCount(data []byte) int {
	data = bytes.TrimSpace(data)
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0
	}
	switch v := raw.(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return int(n)
	}
	return 0
}

// AddToCartRequest is the payload of the add-to-cart endpoint. Price is the
// line total, unit price times quantity.
type AddToCartRequest struct {
	UserID    string    `json:"idUsuario"`
	VariantID domain.ID `json:"idProductoVariante"`
	Quantity  int       `json:"cantidad"`
	Price     float64   `json:"precio"`
	Currency  string    `json:"moneda"`
}

// AddToCart adds a product to the cart and returns the backend message
func (c *Client) AddToCart(ctx context.Context, token string, r AddToCartRequest) (string, error) {
	if r.Currency == "" {
		r.Currency = "USD"
	}
	req, err := jsonRequest(http.MethodPost, "/api/Carrito/agregar-articulo", token, r)
	if err != nil {
		return "", err
	}
	data, err := c.do(ctx, req)
	if err != nil {
		return "", err
	}
	return messageFrom(data), nil
}

// RemoveFromCart deletes one product from the user's cart
func (c *Client) RemoveFromCart(ctx context.Context, token, userID string, productID domain.ID) error {
	_, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/api/Carrito/eliminar-articulo/" + url.PathEscape(userID) + "/" + url.PathEscape(productID.String()),
		token:  token,
	})
	return err
}

// Checkout places the order for everything in the user's cart
func (c *Client) Checkout(ctx context.Context, token, userID string) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/Carrito/finalizar-compra/" + url.PathEscape(userID),
		token:  token,
	})
	return err
}

// LoginResponse is what the login endpoint returns. User is kept raw
// because its shape differs between backend versions.
type LoginResponse struct {
	Token        string          `json:"token"`
	ExpiresAtUTC string          `json:"expiresAtUtc"`
	User         json.RawMessage `json:"user"`
}

// Login exchanges credentials for a session token
func (c *Client) Login(ctx context.Context, userID, password string) (*LoginResponse, error) {
	req, err := jsonRequest(http.MethodPost, "/api/usuarios/login", "", map[string]string{
		"idUsuario": strings.TrimSpace(userID),
		"password":  password,
	})
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	var out LoginResponse
	if err := decode(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify checks that token is still accepted by the backend
func (c *Client) Verify(ctx context.Context, token string) error {
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/api/Usuarios/verify", token: token})
	return err
}

// RegisterRequest is the payload of the registration endpoint
type RegisterRequest struct {
	UserID   string `json:"idUsuario"`
	Name     string `json:"nombreUsuario"`
	Email    string `json:"emailUsuario"`
	Phone    string `json:"telefonoUsuario"`
	Password string `json:"password"`
}

// NewRegisterRequest builds the payload from the sign-up form
func NewRegisterRequest(r domain.Registration) RegisterRequest {
	return RegisterRequest{
		UserID:   r.UserID,
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Password: r.Password,
	}
}

// Register creates an account and returns its id
func (c *Client) Register(ctx context.Context, r RegisterRequest) (string, error) {
	req, err := jsonRequest(http.MethodPost, "/api/Usuarios/registro", "", r)
	if err != nil {
		return "", err
	}
	data, err := c.do(ctx, req)
	if err != nil {
		return "", err
	}
	var out struct {
		UserID domain.ID `json:"idUsuario"`
	}
	if err := decode(data, &out); err != nil {
		return "", err
	}
	return out.UserID.String(), nil
}

// SendCode e-mails a verification code to email
func (c *Client) SendCode(ctx context.Context, email string) error {
	req, err := jsonRequest(http.MethodPost, "/api/verificacion/enviar-codigo", "", map[string]string{"email": email})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, req)
	return err
}

// VerifyCode checks the code the user received
func (c *Client) VerifyCode(ctx context.Context, email, code string) error {
	req, err := jsonRequest(http.MethodPost, "/api/verificacion/verificar-codigo", "", map[string]string{
		"email":  email,
		"codigo": strings.TrimSpace(code),
	})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, req)
	return err
}

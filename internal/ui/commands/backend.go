package commands

import (
	"context"

	"mercauca/internal/api"
	"mercauca/internal/domain"
)

// Backend is the part of the REST client the storefront uses
type Backend interface {
	SliderPhotos(ctx context.Context) ([]domain.SliderPhoto, error)
	NewArrivals(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	Product(ctx context.Context, id domain.ID) (domain.Product, error)
	CreateProduct(ctx context.Context, token string, form domain.ProductForm, image api.Upload) error

	Cart(ctx context.Context, token, userID string) ([]domain.CartItem, error)
	CartCount(ctx context.Context, token, userID string) (int, error)
	AddToCart(ctx context.Context, token string, r api.AddToCartRequest) (string, error)
	RemoveFromCart(ctx context.Context, token, userID string, productID domain.ID) error
	Checkout(ctx context.Context, token, userID string) error

	Login(ctx context.Context, userID, password string) (*api.LoginResponse, error)
	Verify(ctx context.Context, token string) error
	Register(ctx context.Context, r api.RegisterRequest) (string, error)
	SendCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
}

var _ Backend = (*api.Client)(nil)

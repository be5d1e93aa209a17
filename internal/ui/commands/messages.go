package commands

import (
	"mercauca/internal/domain"
	"mercauca/internal/session"
)

// HomeLoadedMsg carries the slider photos and the new-products grid
type HomeLoadedMsg struct {
	Photos   []domain.SliderPhoto
	Products []domain.Product
	Err      error
}

// SearchResultMsg carries the results of one search. Seq lets the model
// drop replies to queries the user already replaced.
type SearchResultMsg struct {
	Query   string
	Seq     int
	Results []domain.Product
	Err     error
}

// ProductLoadedMsg carries the detail of one product
type ProductLoadedMsg struct {
	ID       domain.ID
	Product  domain.Product
	NotFound bool
	Err      error
}

// AddedToCartMsg reports the outcome of an add-to-cart request. Message
// is ready to show in the feedback popup.
type AddedToCartMsg struct {
	Message string
	Err     error
}

// CartLoadedMsg carries the rows of the user's cart
type CartLoadedMsg struct {
	Items   []domain.CartItem
	Message string
	Err     error
}

// CartItemRemovedMsg reports a removed cart row
type CartItemRemovedMsg struct {
	ID      domain.ID
	Message string
	Err     error
}

// CheckoutDoneMsg reports the outcome of placing the order
type CheckoutDoneMsg struct {
	Total   float64
	Message string
	Err     error
}

// CartCountMsg carries the cart badge count
type CartCountMsg struct {
	Count int
	Err   error
}

// LoggedInMsg reports the outcome of a login
type LoggedInMsg struct {
	Session session.Session
	User    domain.User
	UserID  string
	Message string
	Err     error
}

// SessionRestoredMsg carries the session found on disk, if it is still
// accepted by the backend
type SessionRestoredMsg struct {
	Session *session.Session
	User    domain.User
	UserID  string
	Err     error
}

// LoggedOutMsg is sent after the stored session was removed
type LoggedOutMsg struct {
	Err error
}

// CodeSentMsg reports whether the verification code was e-mailed
type CodeSentMsg struct {
	Email   string
	Resend  bool
	Message string
	Err     error
}

// RegisteredMsg reports the verify-then-register sequence. CodeErr is set
// when the code was rejected and the popup should stay open.
type RegisteredMsg struct {
	UserID  string
	Message string
	CodeErr string
	Err     error
}

// ProductCreatedMsg reports the outcome of publishing a listing
type ProductCreatedMsg struct {
	Title   string
	Message string
	Err     error
}

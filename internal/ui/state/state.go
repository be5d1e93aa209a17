package state

import (
	"mercauca/internal/domain"
)

// Screen is the page currently shown below the top bar
type Screen int

const (
	ScreenHome Screen = iota
	ScreenProduct
	ScreenLogin
	ScreenRegister
	ScreenSell
)

func (s Screen) String() string {
	switch s {
	case ScreenProduct:
		return "product"
	case ScreenLogin:
		return "login"
	case ScreenRegister:
		return "register"
	case ScreenSell:
		return "sell"
	default:
		return "home"
	}
}

// Focus is the home page region receiving navigation keys. The search box
// is part of the ring but is handled as its own input mode.
type Focus int

const (
	FocusNone Focus = iota
	FocusCarousel
	FocusGrid
)

// FeedbackKind colours the product page popup
type FeedbackKind int

const (
	FeedbackSuccess FeedbackKind = iota
	FeedbackError
)

// Feedback is the transient popup shown after adding to the cart
type Feedback struct {
	Open    bool
	Kind    FeedbackKind
	Message string
	Seq     int
}

// SlideState is what the carousel controller wrote for one slide
type SlideState struct {
	Slide domain.Slide
	Label string
	Photo string
}

// AppState contains all the application state
type AppState struct {
	Screen Screen
	Focus  Focus

	// Session
	Token     string
	User      domain.User
	UserID    string
	CartCount int

	// Home
	Slides      []SlideState
	TrackOffset int
	DotSelected []bool
	Products    []domain.Product
	GridIndex   int
	HomeLoading bool
	HomeError   string

	// Search
	SearchQuery   string
	SearchSeq     int
	Searching     bool
	ShowResults   bool
	SearchResults []domain.Product
	ResultIndex   int

	// Product detail
	Product         domain.Product
	ProductLoading  bool
	ProductNotFound bool
	Quantity        int
	Adding          bool
	Description     string
	Feedback        Feedback

	// Cart popup
	CartOpen        bool
	Cart            *domain.Cart
	CartLoading     bool
	CartError       string
	CartIndex       int
	CheckingOut     bool
	CheckoutSuccess bool

	// Forms
	FormMessage string
	FormSuccess bool
	Submitting  bool
	CodeMessage string
	CodeEmail   string

	StatusMessage string
	Seq           int
}

// NewAppState creates a new application state
func NewAppState(slides []domain.Slide) *AppState {
	s := &AppState{
		Screen:      ScreenHome,
		Quantity:    1,
		HomeLoading: true,
	}
	s.Slides = make([]SlideState, len(slides))
	s.DotSelected = make([]bool, len(slides))
	for i, sl := range slides {
		s.Slides[i] = SlideState{Slide: sl}
	}
	return s
}

// NextSeq returns a fresh sequence number for delayed messages
func (s *AppState) NextSeq() int {
	s.Seq++
	return s.Seq
}

// LoggedIn reports whether a session token is present
func (s *AppState) LoggedIn() bool {
	return s.Token != "" && s.UserID != ""
}

// SetSession stores the active session
func (s *AppState) SetSession(token string, user domain.User, userID string) {
	s.Token = token
	s.User = user
	s.UserID = userID
}

// ClearSession forgets the active session and its cart
func (s *AppState) ClearSession() {
	s.Token = ""
	s.User = domain.User{}
	s.UserID = ""
	s.CartCount = 0
	s.Cart = nil
}

// CurrentSlide returns the slide the track offset points at
func (s *AppState) CurrentSlide() int {
	if len(s.Slides) == 0 {
		return 0
	}
	i := -s.TrackOffset / 100
	if i < 0 || i >= len(s.Slides) {
		return 0
	}
	return i
}

// SelectedProduct returns the grid product under the cursor
func (s *AppState) SelectedProduct() (domain.Product, bool) {
	if s.GridIndex < 0 || s.GridIndex >= len(s.Products) {
		return domain.Product{}, false
	}
	return s.Products[s.GridIndex], true
}

// SelectedResult returns the highlighted search result
func (s *AppState) SelectedResult() (domain.Product, bool) {
	if s.ResultIndex < 0 || s.ResultIndex >= len(s.SearchResults) {
		return domain.Product{}, false
	}
	return s.SearchResults[s.ResultIndex], true
}

// MoveGrid moves the grid cursor by delta, clamped to the product list
func (s *AppState) MoveGrid(delta int) {
	if len(s.Products) == 0 {
		s.GridIndex = 0
		return
	}
	s.GridIndex = clamp(s.GridIndex+delta, 0, len(s.Products)-1)
}

// MoveResult moves the search result cursor by delta
func (s *AppState) MoveResult(delta int) {
	if len(s.SearchResults) == 0 {
		s.ResultIndex = 0
		return
	}
	s.ResultIndex = clamp(s.ResultIndex+delta, 0, len(s.SearchResults)-1)
}

// MoveCart moves the cart row cursor by delta
func (s *AppState) MoveCart(delta int) {
	if s.Cart.Empty() {
		s.CartIndex = 0
		return
	}
	s.CartIndex = clamp(s.CartIndex+delta, 0, len(s.Cart.Items)-1)
}

// OpenProduct switches to the detail page for p
func (s *AppState) OpenProduct(p domain.Product) {
	s.Screen = ScreenProduct
	s.Product = p
	s.ProductLoading = true
	s.ProductNotFound = false
	s.Quantity = 1
	s.Description = ""
	s.Feedback = Feedback{}
	s.ShowResults = false
}

// IncQuantity and DecQuantity keep the quantity at one or more
func (s *AppState) IncQuantity() { s.Quantity++ }

func (s *AppState) DecQuantity() {
	if s.Quantity > 1 {
		s.Quantity--
	}
}

// LineTotal is the unit price times the selected quantity
func (s *AppState) LineTotal() float64 {
	return float64(s.Product.Price) * float64(s.Quantity)
}

// ResetForm clears the shared form status
func (s *AppState) ResetForm() {
	s.FormMessage = ""
	s.FormSuccess = false
	s.Submitting = false
	s.CodeMessage = ""
	s.CodeEmail = ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

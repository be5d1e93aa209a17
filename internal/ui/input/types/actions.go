package types

import (
	tea "github.com/charmbracelet/bubbletea"

	"mercauca/internal/carousel"
)

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "left", "right", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// FocusAction moves along the home focus ring: search, carousel, grid
type FocusAction struct {
	Forward    bool
	FromSearch bool
}

func (a FocusAction) Type() string { return "focus" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Carousel actions
type CarouselKeyAction struct {
	Key carousel.Key
}

func (a CarouselKeyAction) Type() string { return "carousel_key" }

type ToggleAutoplayAction struct{}

func (a ToggleAutoplayAction) Type() string { return "toggle_autoplay" }

// Catalog actions
type OpenProductAction struct{}

func (a OpenProductAction) Type() string { return "open_product" }

type BackAction struct{}

func (a BackAction) Type() string { return "back" }

type QuantityAction struct {
	Delta int
}

func (a QuantityAction) Type() string { return "quantity" }

type AddToCartAction struct{}

func (a AddToCartAction) Type() string { return "add_to_cart" }

type ShowDescriptionAction struct{}

func (a ShowDescriptionAction) Type() string { return "show_description" }

// Cart actions
type OpenCartAction struct{}

func (a OpenCartAction) Type() string { return "open_cart" }

type CloseCartAction struct{}

func (a CloseCartAction) Type() string { return "close_cart" }

type RemoveCartItemAction struct{}

func (a RemoveCartItemAction) Type() string { return "remove_cart_item" }

type ToggleShippingAction struct{}

func (a ToggleShippingAction) Type() string { return "toggle_shipping" }

type CheckoutAction struct{}

func (a CheckoutAction) Type() string { return "checkout" }

// Screen actions
type OpenLoginAction struct{}

func (a OpenLoginAction) Type() string { return "open_login" }

type OpenRegisterAction struct{}

func (a OpenRegisterAction) Type() string { return "open_register" }

type OpenSellAction struct{}

func (a OpenSellAction) Type() string { return "open_sell" }

type LogoutAction struct{}

func (a LogoutAction) Type() string { return "logout" }

// Form actions
type FormFocusAction struct {
	Forward bool
}

func (a FormFocusAction) Type() string { return "form_focus" }

type CycleOptionAction struct {
	Delta int
}

func (a CycleOptionAction) Type() string { return "cycle_option" }

type SubmitFormAction struct{}

func (a SubmitFormAction) Type() string { return "submit_form" }

// UpdateFormAction carries a key the focused form field should consume
type UpdateFormAction struct {
	Msg tea.KeyMsg
}

func (a UpdateFormAction) Type() string { return "update_form" }

type ResendCodeAction struct{}

func (a ResendCodeAction) Type() string { return "resend_code" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ShowHelpPagerAction struct{}

func (a ShowHelpPagerAction) Type() string { return "show_help_pager" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

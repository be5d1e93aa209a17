package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"mercauca/internal/domain"
	"mercauca/internal/eventbus"
	"mercauca/internal/ui/state"
)

// CartCounter fetches the cart badge count for the active session
type CartCounter func(token, userID string) tea.Cmd

// EventHandler handles domain events and updates state
type EventHandler struct {
	state     *state.AppState
	cartCount CartCounter
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, cartCount CartCounter) *EventHandler {
	return &EventHandler{
		state:     appState,
		cartCount: cartCount,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.SessionStartedEvent:
		if e.User.DisplayName() != "" {
			h.state.StatusMessage = fmt.Sprintf("Hola, %s", e.User.DisplayName())
		}
		return h.refreshCount()

	case eventbus.CartChangedEvent:
		if e.UserID != "" && e.UserID != h.state.UserID {
			return nil
		}
		return h.refreshCount()

	case eventbus.CheckoutCompletedEvent:
		h.state.StatusMessage = fmt.Sprintf("Pedido realizado por %s", domain.FormatPrice(e.Total))

	case eventbus.ProductPublishedEvent:
		h.state.StatusMessage = fmt.Sprintf("Publicado: %s", e.Title)

	case eventbus.SessionEndedEvent:
		h.state.ClearSession()
		switch e.Reason {
		case "expired":
			h.state.StatusMessage = "Tu sesión expiró"
		case "rejected":
			h.state.StatusMessage = "Tu sesión ya no es válida"
		default:
			h.state.StatusMessage = "Sesión cerrada"
		}

	case eventbus.ErrorEvent:
		h.state.StatusMessage = fmt.Sprintf("Error: %s", e.Message)
	}

	return nil
}

func (h *EventHandler) refreshCount() tea.Cmd {
	if h.cartCount == nil || !h.state.LoggedIn() {
		return nil
	}
	return h.cartCount(h.state.Token, h.state.UserID)
}

package handlers

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"mercauca/internal/domain"
	"mercauca/internal/eventbus"
	"mercauca/internal/ui/state"
)

type countCall struct {
	token, userID string
}

func newHandler() (*EventHandler, *state.AppState, *[]countCall) {
	s := state.NewAppState(nil)
	var calls []countCall
	h := NewEventHandler(s, func(token, userID string) tea.Cmd {
		calls = append(calls, countCall{token, userID})
		return func() tea.Msg { return nil }
	})
	return h, s, &calls
}

func TestSessionStartedGreetsAndRefreshesCount(t *testing.T) {
	h, s, calls := newHandler()
	s.SetSession("tok", domain.User{Name: "Ana"}, "ana")

	cmd := h.HandleEvent(eventbus.SessionStartedEvent{User: domain.User{Name: "Ana"}})
	assert.NotNil(t, cmd)
	assert.Equal(t, "Hola, Ana", s.StatusMessage)
	assert.Equal(t, []countCall{{"tok", "ana"}}, *calls)
}

func TestCartChangedIgnoresOtherUsers(t *testing.T) {
	h, s, calls := newHandler()
	s.SetSession("tok", domain.User{}, "ana")

	assert.Nil(t, h.HandleEvent(eventbus.CartChangedEvent{UserID: "luis"}))
	assert.NotNil(t, h.HandleEvent(eventbus.CartChangedEvent{UserID: "ana"}))
	assert.Len(t, *calls, 1)
}

func TestNoRefreshWithoutSession(t *testing.T) {
	h, _, calls := newHandler()
	assert.Nil(t, h.HandleEvent(eventbus.CartChangedEvent{}))
	assert.Empty(t, *calls)
}

func TestSessionEndedClearsState(t *testing.T) {
	for reason, want := range map[string]string{
		"expired":  "Tu sesión expiró",
		"rejected": "Tu sesión ya no es válida",
		"logout":   "Sesión cerrada",
	} {
		t.Run(reason, func(t *testing.T) {
			h, s, _ := newHandler()
			s.SetSession("tok", domain.User{}, "ana")
			s.CartCount = 2

			h.HandleEvent(eventbus.SessionEndedEvent{Reason: reason})
			assert.False(t, s.LoggedIn())
			assert.Zero(t, s.CartCount)
			assert.Equal(t, want, s.StatusMessage)
		})
	}
}

func TestStatusEvents(t *testing.T) {
	h, s, _ := newHandler()

	h.HandleEvent(eventbus.CheckoutCompletedEvent{UserID: "ana", Total: 29.9})
	assert.Equal(t, "Pedido realizado por "+domain.FormatPrice(29.9), s.StatusMessage)

	h.HandleEvent(eventbus.ProductPublishedEvent{Title: "Reloj"})
	assert.Equal(t, "Publicado: Reloj", s.StatusMessage)

	h.HandleEvent(eventbus.ErrorEvent{Message: "sin conexión"})
	assert.Equal(t, "Error: sin conexión", s.StatusMessage)
}

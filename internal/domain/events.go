package domain

// EventType represents the type of domain event
type EventType string

const (
	EventSessionStarted    EventType = "SessionStarted"
	EventSessionEnded      EventType = "SessionEnded"
	EventCartChanged       EventType = "CartChanged"
	EventCheckoutCompleted EventType = "CheckoutCompleted"
	EventProductPublished  EventType = "ProductPublished"
	EventError             EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SessionStartedEvent is emitted after a login or a verified restored session
type SessionStartedEvent struct {
	User User
}

func (e SessionStartedEvent) Type() EventType { return EventSessionStarted }

// SessionEndedEvent is emitted on logout, expiry or a rejected token
type SessionEndedEvent struct {
	Reason string
}

func (e SessionEndedEvent) Type() EventType { return EventSessionEnded }

// CartChangedEvent is emitted when items were added or removed
type CartChangedEvent struct {
	UserID string
}

func (e CartChangedEvent) Type() EventType { return EventCartChanged }

// CheckoutCompletedEvent is emitted after an order was placed
type CheckoutCompletedEvent struct {
	UserID string
	Total  float64
}

func (e CheckoutCompletedEvent) Type() EventType { return EventCheckoutCompleted }

// ProductPublishedEvent is emitted after the sell form was accepted
type ProductPublishedEvent struct {
	Title string
}

func (e ProductPublishedEvent) Type() EventType { return EventProductPublished }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

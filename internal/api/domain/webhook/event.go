package webhook

import (
	"encoding/json"
	"fmt"

	"RenewalSync/internal/api/domain/gateway"
)

const (
	EventPaymentAuthorized = "payment.authorized"
	EventPaymentFailed     = "payment.failed"
)

// Event is an inbound gateway webhook. Only the fields the handler reads are decoded.
type Event struct {
	Name    string  `json:"event"`
	Payload Payload `json:"payload"`
}

type Payload struct {
	Payment *PaymentEnvelope `json:"payment,omitempty"`
	Invoice *InvoiceEnvelope `json:"invoice,omitempty"`
}

type PaymentEnvelope struct {
	Entity PaymentEntity `json:"entity"`
}

type PaymentEntity struct {
	ID        string        `json:"id"`
	Status    string        `json:"status"`
	Amount    int64         `json:"amount"`
	Currency  string        `json:"currency"`
	InvoiceID string        `json:"invoice_id"`
	Notes     gateway.Notes `json:"notes"`
}

type InvoiceEnvelope struct {
	Entity InvoiceEntity `json:"entity"`
}

type InvoiceEntity struct {
	ID             string `json:"id"`
	SubscriptionID string `json:"subscription_id"`
}

// Parse decodes a raw webhook body. Payment events must carry a payment entity id.
func Parse(body []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if ev.Name == "" {
		return Event{}, missingField("event")
	}

	if ev.IsPaymentEvent() {
		if ev.Payload.Payment == nil {
			return Event{}, missingField("payload.payment.entity")
		}
		if ev.Payload.Payment.Entity.ID == "" {
			return Event{}, missingField("payload.payment.entity.id")
		}
	}

	return ev, nil
}

func (e Event) IsPaymentEvent() bool {
	return e.Name == EventPaymentAuthorized || e.Name == EventPaymentFailed
}

// Payment returns the payment entity, or a zero value for events that carry none.
func (e Event) Payment() PaymentEntity {
	if e.Payload.Payment == nil {
		return PaymentEntity{}
	}
	return e.Payload.Payment.Entity
}

// EntityID is the id of the primary entity the event refers to.
func (e Event) EntityID() string {
	if e.Payload.Payment != nil {
		return e.Payload.Payment.Entity.ID
	}
	if e.Payload.Invoice != nil {
		return e.Payload.Invoice.Entity.ID
	}
	return ""
}

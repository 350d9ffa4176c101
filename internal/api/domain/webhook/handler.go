package webhook

import (
	"context"
	"fmt"

	"RenewalSync/internal/api/domain/gateway"
	"RenewalSync/internal/api/domain/order"
	"RenewalSync/internal/api/domain/subscription"
	"RenewalSync/pkg/metrics"
)

const multipleSubscriptionsMessage = "There are more than one subscription products in this order"

type Config struct {
	// AutoCapture captures authorized payments for the full order amount.
	AutoCapture bool
	// OrderNoteKey is the notes key holding the platform order id.
	OrderNoteKey string
}

// Handler reconciles payment and subscription renewal state from gateway webhooks.
// Each call runs start to finish on the caller's goroutine; the paid count comparison
// in processSubscriptionSuccess is the only guard against duplicate or reordered deliveries.
type Handler struct {
	gateway       gateway.Gateway
	orders        order.OrderRepo
	subscriptions subscription.SubscriptionRepo
	log           LogSink
	cfg           Config
}

func NewHandler(
	gw gateway.Gateway,
	orders order.OrderRepo,
	subscriptions subscription.SubscriptionRepo,
	log LogSink,
	cfg Config,
) *Handler {
	return &Handler{
		gateway:       gw,
		orders:        orders,
		subscriptions: subscriptions,
		log:           log,
		cfg:           cfg,
	}
}

func (h *Handler) Dispatch(ctx context.Context, ev Event) (Outcome, error) {
	var (
		out Outcome
		err error
	)

	switch ev.Name {
	case EventPaymentAuthorized:
		out, err = h.HandlePaymentAuthorized(ctx, ev)
	case EventPaymentFailed:
		out, err = h.HandlePaymentFailed(ctx, ev)
	default:
		out = ignored(ReasonUnsupportedEvent)
	}

	metrics.WebhookEventsTotal.WithLabelValues(eventLabel(ev.Name), resultLabel(out, err)).Inc()
	return out, err
}

func (h *Handler) HandlePaymentAuthorized(ctx context.Context, ev Event) (Outcome, error) {
	p := ev.Payment()

	if p.InvoiceID != "" {
		invoice, err := h.getInvoice(ctx, p.InvoiceID, ev.Name)
		if err != nil {
			return Outcome{}, err
		}
		if invoice.SubscriptionID != "" {
			return h.processSubscription(ctx, ev.Name, p.ID, invoice.SubscriptionID, true)
		}
	}

	orderID, ok := p.Notes.Get(h.cfg.OrderNoteKey)
	if !ok {
		return Outcome{}, missingField("payload.payment.entity.notes." + h.cfg.OrderNoteKey)
	}

	o, err := h.orders.GetOrder(ctx, orderID)
	if err != nil {
		return Outcome{}, fmt.Errorf("get order %s: %w", orderID, err)
	}
	if !o.NeedsPayment() {
		return ignored(ReasonAlreadyPaid), nil
	}

	payment, err := h.gateway.FetchPayment(ctx, p.ID)
	if err != nil {
		h.log.Write(ctx, LogEntry{Message: err.Error(), Data: p.ID, Event: ev.Name})
		return Outcome{}, fmt.Errorf("%w: fetch payment %s: %w", ErrGatewayFetch, p.ID, err)
	}

	update := order.PaymentUpdate{
		OrderID:     o.ID,
		Message:     order.FailedPaymentMessage,
		PaymentID:   p.ID,
		FromWebhook: true,
	}

	switch {
	case payment.Status == gateway.PaymentCaptured:
		update.Success = true
	case payment.Status == gateway.PaymentAuthorized && h.cfg.AutoCapture:
		currency := o.Currency
		if currency == "" {
			currency = payment.Currency
		}
		_, err := h.gateway.CapturePayment(ctx, gateway.CaptureRequest{
			PaymentID: p.ID,
			Amount:    o.AmountAsInteger(),
			Currency:  currency,
		})
		if err != nil {
			h.log.Write(ctx, LogEntry{Message: err.Error(), Data: p.ID, Event: ev.Name})
			return Outcome{}, fmt.Errorf("%w: capture payment %s: %w", ErrGatewayFetch, p.ID, err)
		}
		update.Success = true
	}

	if err := h.orders.UpdateOrder(ctx, update); err != nil {
		return Outcome{}, fmt.Errorf("update order %s: %w", o.ID, err)
	}

	if update.Success {
		return handled(ReasonOrderPaid), nil
	}
	return handled(ReasonOrderFailed), nil
}

// HandlePaymentFailed only acts on subscription invoices; other failures are left to the checkout flow.
func (h *Handler) HandlePaymentFailed(ctx context.Context, ev Event) (Outcome, error) {
	p := ev.Payment()
	if p.InvoiceID == "" {
		return ignored(ReasonNotSubscription), nil
	}

	invoice, err := h.getInvoice(ctx, p.InvoiceID, ev.Name)
	if err != nil {
		return Outcome{}, err
	}
	if invoice.SubscriptionID == "" {
		return ignored(ReasonNotSubscription), nil
	}

	return h.processSubscription(ctx, ev.Name, p.ID, invoice.SubscriptionID, false)
}

func (h *Handler) getInvoice(ctx context.Context, invoiceID, eventName string) (gateway.Invoice, error) {
	invoice, err := h.gateway.FetchInvoice(ctx, invoiceID)
	if err != nil {
		h.log.Write(ctx, LogEntry{Message: err.Error(), Data: invoiceID, Event: eventName})
		return gateway.Invoice{}, fmt.Errorf("%w: fetch invoice %s: %w", ErrGatewayFetch, invoiceID, err)
	}
	return invoice, nil
}

func (h *Handler) processSubscription(ctx context.Context, eventName, paymentID, subscriptionID string, success bool) (Outcome, error) {
	remote, err := h.gateway.FetchSubscription(ctx, subscriptionID)
	if err != nil {
		return Outcome{}, &SubscriptionFetchError{SubscriptionID: subscriptionID, Err: err}
	}

	orderID, ok := remote.Notes.Get(h.cfg.OrderNoteKey)
	if !ok {
		return Outcome{}, missingField("subscription.notes." + h.cfg.OrderNoteKey)
	}

	if !success {
		return h.processSubscriptionFailed(ctx, orderID)
	}
	return h.processSubscriptionSuccess(ctx, eventName, orderID, remote, paymentID)
}

func (h *Handler) processSubscriptionSuccess(
	ctx context.Context,
	eventName, orderID string,
	remote gateway.Subscription,
	paymentID string,
) (Outcome, error) {
	subs, err := h.subscriptions.SubscriptionsForOrder(ctx, orderID)
	if err != nil {
		return Outcome{}, fmt.Errorf("subscriptions for order %s: %w", orderID, err)
	}
	if len(subs) == 0 {
		return Outcome{}, fmt.Errorf("order %s: %w", orderID, subscription.ErrNotFound)
	}
	if len(subs) > 1 {
		h.log.Write(ctx, LogEntry{Message: multipleSubscriptionsMessage, Data: orderID, Event: eventName})
		return Outcome{}, fmt.Errorf("%w: order %s has %d subscriptions", ErrConfiguration, orderID, len(subs))
	}

	local := subs[0]
	completed := local.CompletedPaymentCount

	switch {
	case completed == remote.TotalCount:
		return ignored(ReasonFullyPaid), nil
	case completed+1 == remote.PaidCount:
		err := h.subscriptions.InTransaction(ctx, func(tx subscription.TxSubscriptionRepo) error {
			renewal, err := tx.PrepareRenewal(ctx, local.ID)
			if err != nil {
				return fmt.Errorf("prepare renewal: %w", err)
			}
			if err := tx.MarkPaid(ctx, renewal, paymentID); err != nil {
				return fmt.Errorf("mark renewal paid: %w", err)
			}
			return nil
		})
		if err != nil {
			return Outcome{}, fmt.Errorf("renew subscription %s: %w", local.ID, err)
		}
		return handled(ReasonRenewalPaid), nil
	default:
		metrics.RenewalMismatchTotal.WithLabelValues(eventName).Inc()
		return ignored(ReasonCountMismatch), nil
	}
}

func (h *Handler) processSubscriptionFailed(ctx context.Context, orderID string) (Outcome, error) {
	if err := h.subscriptions.MarkFailed(ctx, orderID); err != nil {
		return Outcome{}, fmt.Errorf("mark subscription failed for order %s: %w", orderID, err)
	}
	return handled(ReasonRenewalFailed), nil
}

func eventLabel(name string) string {
	switch name {
	case EventPaymentAuthorized, EventPaymentFailed:
		return name
	default:
		return "other"
	}
}

func resultLabel(out Outcome, err error) string {
	if err != nil {
		return "error"
	}
	return string(out.Result)
}

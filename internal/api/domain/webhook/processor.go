package webhook

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"RenewalSync/internal/api/domain/delivery"
	"RenewalSync/pkg/logger"
)

// Inbound is a signature-verified webhook body as received from the gateway.
type Inbound struct {
	ProviderEventID string
	Body            []byte
	ReceivedAt      time.Time
}

// Processor resolves an inbound delivery, either in place or by queueing it.
type Processor interface {
	Process(ctx context.Context, in Inbound) (Outcome, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event) (Outcome, error)
}

// SyncProcessor parses and dispatches a delivery on the caller's goroutine and
// records the result in the delivery log.
type SyncProcessor struct {
	dispatcher Dispatcher
	sink       delivery.Sink
	now        func() time.Time
}

func NewSyncProcessor(dispatcher Dispatcher, sink delivery.Sink) *SyncProcessor {
	return &SyncProcessor{
		dispatcher: dispatcher,
		sink:       sink,
		now:        time.Now,
	}
}

// Process never suppresses a redelivery: a provider event id seen before is
// flagged in the log and handled again.
func (p *SyncProcessor) Process(ctx context.Context, in Inbound) (Outcome, error) {
	if in.ReceivedAt.IsZero() {
		in.ReceivedAt = p.now().UTC()
	}

	if in.ProviderEventID != "" {
		ctx = logger.WithAttrs(ctx, slog.String("provider_event_id", in.ProviderEventID))
	}
	redelivery := p.seen(ctx, in.ProviderEventID)

	ev, err := Parse(in.Body)
	if err != nil {
		p.record(ctx, in, ev, Outcome{}, err, redelivery)
		return Outcome{}, err
	}

	if redelivery {
		slog.InfoContext(ctx, "Processing redelivered webhook",
			"event", ev.Name,
			"entity_id", ev.EntityID())
	}

	out, err := p.dispatcher.Dispatch(ctx, ev)
	p.record(ctx, in, ev, out, err, redelivery)

	if err != nil {
		slog.ErrorContext(ctx, "Webhook processing failed",
			"event", ev.Name,
			"entity_id", ev.EntityID(),
			slog.Any("error", err))
		return Outcome{}, err
	}

	slog.InfoContext(ctx, "Webhook processed",
		"event", ev.Name,
		"entity_id", ev.EntityID(),
		"result", out.Result,
		"reason", out.Reason)
	return out, nil
}

func (p *SyncProcessor) seen(ctx context.Context, providerEventID string) bool {
	if providerEventID == "" {
		return false
	}
	seen, err := p.sink.Seen(ctx, providerEventID)
	if err != nil {
		slog.WarnContext(ctx, "Delivery lookup failed", slog.Any("error", err))
		return false
	}
	return seen
}

// record is best effort: the delivery log must not turn a reconciled payment into a redelivery.
func (p *SyncProcessor) record(ctx context.Context, in Inbound, ev Event, out Outcome, procErr error, redelivery bool) {
	d := delivery.NewDelivery{
		ProviderEventID: in.ProviderEventID,
		Event:           ev.Name,
		EntityID:        ev.EntityID(),
		Redelivery:      redelivery,
		Payload:         rawPayload(in.Body),
		ReceivedAt:      in.ReceivedAt,
	}

	switch {
	case procErr != nil:
		d.Result = delivery.ResultFailed
		d.Error = procErr.Error()
	case out.Result == ResultIgnored:
		d.Result = delivery.ResultIgnored
		d.Reason = out.Reason
	default:
		d.Result = delivery.ResultHandled
		d.Reason = out.Reason
	}

	if _, err := p.sink.Record(ctx, d); err != nil {
		slog.ErrorContext(ctx, "Failed to record webhook delivery",
			"event", ev.Name,
			slog.Any("error", err))
	}
}

// rawPayload keeps valid JSON as is and stores anything else as a JSON string.
func rawPayload(body []byte) json.RawMessage {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}

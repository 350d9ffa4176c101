package delivery

import "context"

//go:generate mockgen -source sink.go -destination mock_sink.go -package delivery

type Sink interface {
	Record(ctx context.Context, d NewDelivery) (*Delivery, error)
	// Seen reports whether a delivery with this provider event id was recorded before.
	Seen(ctx context.Context, providerEventID string) (bool, error)
	List(ctx context.Context, query Query) (Page, error)
}

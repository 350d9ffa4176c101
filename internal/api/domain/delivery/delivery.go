package delivery

import (
	"encoding/json"
	"time"
)

// Delivery is one inbound webhook delivery and how it was resolved.
type Delivery struct {
	ID string `json:"id"`
	NewDelivery
}

type NewDelivery struct {
	ProviderEventID string          `json:"provider_event_id"`
	Event           string          `json:"event"`
	EntityID        string          `json:"entity_id"`
	Result          Result          `json:"result"`
	Reason          string          `json:"reason,omitempty"`
	Error           string          `json:"error,omitempty"`
	Redelivery      bool            `json:"redelivery"`
	Payload         json.RawMessage `json:"payload"`
	ReceivedAt      time.Time       `json:"received_at"`
}

type Result string

const (
	ResultHandled Result = "handled"
	ResultIgnored Result = "ignored"
	ResultFailed  Result = "failed"
)

type Page struct {
	Items      []Delivery `json:"items"`
	NextCursor string     `json:"next_cursor"`
	HasMore    bool       `json:"has_more"`
}

type Query struct {
	Events           []string `json:"events" form:"events" url:"events,omitempty"`
	Results          []Result `json:"results" form:"results" url:"results,omitempty"`
	ProviderEventIDs []string `json:"provider_event_ids" form:"provider_event_ids" url:"provider_event_ids,omitempty"`

	TimeFrom *time.Time `json:"time_from,omitempty" form:"time_from" time_format:"2006-01-02T15:04:05Z07:00" url:"time_from,omitempty"`
	TimeTo   *time.Time `json:"time_to,omitempty" form:"time_to" time_format:"2006-01-02T15:04:05Z07:00" url:"time_to,omitempty"`

	Limit   int    `json:"limit" form:"limit" url:"limit,omitempty"`
	Cursor  string `json:"cursor" form:"cursor" url:"cursor,omitempty"`
	SortAsc bool   `json:"sort_asc" form:"sort_asc" url:"sort_asc,omitempty"`
}

const (
	DefaultLimit = 10
	MaxLimit     = 1000
)

// Normalize clamps the page size into the supported range.
func (q Query) Normalize() Query {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

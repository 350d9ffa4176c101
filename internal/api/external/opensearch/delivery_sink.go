package opensearch

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"RenewalSync/internal/api/domain/delivery"

	"github.com/google/uuid"
	"github.com/opensearch-project/opensearch-go"
)

var _ delivery.Sink = (*DeliverySink)(nil)

type DeliverySink struct {
	client *opensearch.Client
	index  string
}

func NewDeliverySink(ctx context.Context, urls []string, index string) (*DeliverySink, error) {
	if len(urls) == 0 {
		return nil, errors.New("no OpenSearch addresses configured")
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: urls,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 10,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("opensearch client: %w", err)
	}

	sink := &DeliverySink{client: client, index: index}
	if err := sink.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return sink, nil
}

// Client exposes the underlying client for health checks.
func (s *DeliverySink) Client() *opensearch.Client {
	return s.client
}

func (s *DeliverySink) ensureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("indices.exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"id":                map[string]any{"type": "keyword"},
				"provider_event_id": map[string]any{"type": "keyword"},
				"event":             map[string]any{"type": "keyword"},
				"entity_id":         map[string]any{"type": "keyword"},
				"result":            map[string]any{"type": "keyword"},
				"reason":            map[string]any{"type": "text"},
				"error":             map[string]any{"type": "text"},
				"redelivery":        map[string]any{"type": "boolean"},
				"payload":           map[string]any{"type": "object", "enabled": false},
				"received_at":       map[string]any{"type": "date"},
			},
		},
	}
	buf, _ := json.Marshal(body)
	cr, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(bytes.NewReader(buf)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("indices.create: %w", err)
	}
	defer cr.Body.Close()
	if cr.IsError() {
		return fmt.Errorf("indices.create error: %s", cr.String())
	}
	return nil
}

type deliveryDoc struct {
	ID              string          `json:"id"`
	ProviderEventID string          `json:"provider_event_id,omitempty"`
	Event           string          `json:"event"`
	EntityID        string          `json:"entity_id,omitempty"`
	Result          delivery.Result `json:"result"`
	Reason          string          `json:"reason,omitempty"`
	Error           string          `json:"error,omitempty"`
	Redelivery      bool            `json:"redelivery"`
	Payload         json.RawMessage `json:"payload,omitempty"`
	ReceivedAt      time.Time       `json:"received_at"`
}

func (s *DeliverySink) Record(ctx context.Context, d delivery.NewDelivery) (*delivery.Delivery, error) {
	id := uuid.NewString()
	if d.ReceivedAt.IsZero() {
		d.ReceivedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(deliveryDoc{
		ID:              id,
		ProviderEventID: d.ProviderEventID,
		Event:           d.Event,
		EntityID:        d.EntityID,
		Result:          d.Result,
		Reason:          d.Reason,
		Error:           d.Error,
		Redelivery:      d.Redelivery,
		Payload:         d.Payload,
		ReceivedAt:      d.ReceivedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal delivery: %w", err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(payload),
		s.client.Index.WithDocumentID(id),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("index error: %s", res.String())
	}

	return &delivery.Delivery{ID: id, NewDelivery: d}, nil
}

func (s *DeliverySink) Seen(ctx context.Context, providerEventID string) (bool, error) {
	if providerEventID == "" {
		return false, nil
	}

	raw, _ := json.Marshal(map[string]any{
		"query": map[string]any{
			"term": map[string]any{"provider_event_id": providerEventID},
		},
	})
	res, err := s.client.Count(
		s.client.Count.WithContext(ctx),
		s.client.Count.WithIndex(s.index),
		s.client.Count.WithBody(bytes.NewReader(raw)),
	)
	if err != nil {
		return false, fmt.Errorf("count: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return false, fmt.Errorf("count error: %s", res.String())
	}

	var cr struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&cr); err != nil {
		return false, fmt.Errorf("decode count: %w", err)
	}
	return cr.Count > 0, nil
}

type pageCursor struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
}

func (s *DeliverySink) List(ctx context.Context, query delivery.Query) (delivery.Page, error) {
	query = query.Normalize()

	body, err := buildSearchBody(query)
	if err != nil {
		return delivery.Page{}, err
	}
	raw, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(raw)),
	)
	if err != nil {
		return delivery.Page{}, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return delivery.Page{}, fmt.Errorf("search error: %s", res.String())
	}

	var sr struct {
		Hits struct {
			Hits []struct {
				ID     string          `json:"_id"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return delivery.Page{}, fmt.Errorf("decode search: %w", err)
	}

	items := make([]delivery.Delivery, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		var doc deliveryDoc
		if err := json.Unmarshal(h.Source, &doc); err != nil {
			return delivery.Page{}, fmt.Errorf("decode hit: %w", err)
		}
		id := doc.ID
		if id == "" {
			id = h.ID
		}
		items = append(items, delivery.Delivery{
			ID: id,
			NewDelivery: delivery.NewDelivery{
				ProviderEventID: doc.ProviderEventID,
				Event:           doc.Event,
				EntityID:        doc.EntityID,
				Result:          doc.Result,
				Reason:          doc.Reason,
				Error:           doc.Error,
				Redelivery:      doc.Redelivery,
				Payload:         doc.Payload,
				ReceivedAt:      doc.ReceivedAt,
			},
		})
	}

	hasMore := len(items) > query.Limit
	if hasMore {
		items = items[:query.Limit]
	}

	var nextCursor string
	if hasMore && len(items) > 0 {
		last := items[len(items)-1]
		b, _ := json.Marshal(pageCursor{ID: last.ID, ReceivedAt: last.ReceivedAt})
		nextCursor = base64.StdEncoding.EncodeToString(b)
	}

	return delivery.Page{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func buildSearchBody(q delivery.Query) (map[string]any, error) {
	filters := make([]map[string]any, 0, 4)
	if len(q.Events) > 0 {
		filters = append(filters, map[string]any{"terms": map[string]any{"event": q.Events}})
	}
	if len(q.Results) > 0 {
		filters = append(filters, map[string]any{"terms": map[string]any{"result": q.Results}})
	}
	if len(q.ProviderEventIDs) > 0 {
		filters = append(filters, map[string]any{"terms": map[string]any{"provider_event_id": q.ProviderEventIDs}})
	}

	received := map[string]any{}
	if q.TimeFrom != nil {
		received["gte"] = q.TimeFrom.UTC()
	}
	if q.TimeTo != nil {
		received["lt"] = q.TimeTo.UTC()
	}
	if len(received) > 0 {
		filters = append(filters, map[string]any{"range": map[string]any{"received_at": received}})
	}

	order := "desc"
	if q.SortAsc {
		order = "asc"
	}

	body := map[string]any{
		"size": q.Limit + 1,
		"query": map[string]any{
			"bool": map[string]any{"filter": filters},
		},
		"sort": []map[string]any{
			{"received_at": map[string]any{"order": order}},
			{"id": map[string]any{"order": order}},
		},
	}

	if q.Cursor != "" {
		b, err := base64.StdEncoding.DecodeString(q.Cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: decode cursor: %v", delivery.ErrInvalidQuery, err)
		}
		var c pageCursor
		if err := json.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("%w: decode cursor: %v", delivery.ErrInvalidQuery, err)
		}
		body["search_after"] = []any{c.ReceivedAt.UTC().UnixMilli(), c.ID}
	}

	return body, nil
}

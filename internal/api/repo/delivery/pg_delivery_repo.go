package delivery_repo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"RenewalSync/internal/api/domain/delivery"
	"RenewalSync/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PgDeliveryRepo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

var _ delivery.Sink = (*PgDeliveryRepo)(nil)

func NewPgDeliveryRepo(db postgres.Executor, builder squirrel.StatementBuilderType) *PgDeliveryRepo {
	return &PgDeliveryRepo{
		db:      db,
		builder: builder,
	}
}

func (r *PgDeliveryRepo) Record(ctx context.Context, d delivery.NewDelivery) (*delivery.Delivery, error) {
	id := uuid.New().String()
	if d.ReceivedAt.IsZero() {
		d.ReceivedAt = time.Now().UTC()
	}

	query, args, err := r.builder.Insert("webhook_deliveries").
		Columns("id", "provider_event_id", "event", "entity_id", "result", "reason", "error", "redelivery", "payload", "received_at").
		Values(id, d.ProviderEventID, d.Event, d.EntityID, d.Result, d.Reason, d.Error, d.Redelivery, d.Payload, d.ReceivedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("record delivery: %w", err)
	}

	return &delivery.Delivery{
		ID:          id,
		NewDelivery: d,
	}, nil
}

func (r *PgDeliveryRepo) Seen(ctx context.Context, providerEventID string) (bool, error) {
	if providerEventID == "" {
		return false, nil
	}

	query, args, err := r.builder.Select("1").
		Prefix("SELECT EXISTS (").
		From("webhook_deliveries").
		Where(squirrel.Eq{"provider_event_id": providerEventID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build seen query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check delivery: %w", err)
	}
	return exists, nil
}

func (r *PgDeliveryRepo) List(ctx context.Context, query delivery.Query) (delivery.Page, error) {
	query = query.Normalize()

	sqlQuery, args, err := r.buildPageQuery(query)
	if err != nil {
		return delivery.Page{}, err
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return delivery.Page{}, fmt.Errorf("query deliveries: %w", err)
	}
	defer rows.Close()

	items, err := parseDeliveryRows(rows)
	if err != nil {
		return delivery.Page{}, fmt.Errorf("parse deliveries: %w", err)
	}

	hasMore := len(items) > query.Limit
	if hasMore {
		items = items[:query.Limit] // trim the probe row
	}

	var nextCursor string
	if hasMore && len(items) > 0 {
		last := items[len(items)-1]
		nextCursor = encodeCursor(pageCursor{ID: last.ID, ReceivedAt: last.ReceivedAt})
	}

	return delivery.Page{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

type pageCursor struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
}

func encodeCursor(c pageCursor) string {
	b, _ := json.Marshal(c)
	return base64.StdEncoding.EncodeToString(b)
}

func decodeCursor(s string) (pageCursor, error) {
	var c pageCursor
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return c, err
	}
	return c, json.Unmarshal(b, &c)
}

// SELECT ... FROM webhook_deliveries
// WHERE event IN @Events AND result IN @Results AND provider_event_id IN @ProviderEventIDs
//
//	AND received_at >= @TimeFrom AND received_at < @TimeTo
//	AND (received_at, id) < (@cursor.ReceivedAt, @cursor.ID)
//
// ORDER BY received_at DESC/ASC, id DESC/ASC
// LIMIT @Limit+1
func (r *PgDeliveryRepo) buildPageQuery(q delivery.Query) (string, []interface{}, error) {
	b := r.builder.Select(
		"id", "COALESCE(provider_event_id, '')", "event", "COALESCE(entity_id, '')", "result",
		"COALESCE(reason, '')", "COALESCE(error, '')", "redelivery", "payload", "received_at",
	).
		From("webhook_deliveries")

	if len(q.Events) > 0 {
		b = b.Where(squirrel.Eq{"event": q.Events})
	}
	if len(q.Results) > 0 {
		b = b.Where(squirrel.Eq{"result": q.Results})
	}
	if len(q.ProviderEventIDs) > 0 {
		b = b.Where(squirrel.Eq{"provider_event_id": q.ProviderEventIDs})
	}
	if q.TimeFrom != nil {
		b = b.Where("received_at >= ?", q.TimeFrom.UTC())
	}
	if q.TimeTo != nil {
		b = b.Where("received_at < ?", q.TimeTo.UTC())
	}

	if q.Cursor != "" {
		cursor, err := decodeCursor(q.Cursor)
		if err != nil {
			return "", nil, fmt.Errorf("%w: decode cursor: %v", delivery.ErrInvalidQuery, err)
		}
		if q.SortAsc {
			b = b.Where("(received_at, id) > (?, ?)", cursor.ReceivedAt.UTC(), cursor.ID)
		} else {
			b = b.Where("(received_at, id) < (?, ?)", cursor.ReceivedAt.UTC(), cursor.ID)
		}
	}

	if q.SortAsc {
		b = b.OrderBy("received_at ASC", "id ASC")
	} else {
		b = b.OrderBy("received_at DESC", "id DESC")
	}

	b = b.Limit(uint64(q.Limit + 1))

	sql, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build deliveries query: %w", err)
	}
	return sql, args, nil
}

func parseDeliveryRows(rows pgx.Rows) ([]delivery.Delivery, error) {
	var items []delivery.Delivery
	for rows.Next() {
		var d delivery.Delivery
		var rawResult string
		err := rows.Scan(&d.ID, &d.ProviderEventID, &d.Event, &d.EntityID, &rawResult,
			&d.Reason, &d.Error, &d.Redelivery, &d.Payload, &d.ReceivedAt)
		if err != nil {
			return nil, fmt.Errorf("scan delivery row: %w", err)
		}
		d.Result = delivery.Result(rawResult)

		items = append(items, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate delivery rows: %w", err)
	}

	return items, nil
}

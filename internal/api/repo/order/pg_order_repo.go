package order_repo

import (
	"context"
	"errors"
	"fmt"

	"RenewalSync/internal/api/domain/order"
	"RenewalSync/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgOrderRepo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

var _ order.OrderRepo = (*PgOrderRepo)(nil)

func NewPgOrderRepo(pg *postgres.Postgres) *PgOrderRepo {
	return &PgOrderRepo{
		db:      pg.Pool,
		builder: pg.Builder,
	}
}

func (r *PgOrderRepo) GetOrder(ctx context.Context, id string) (order.Order, error) {
	query, args, err := r.builder.Select(
		"id", "status", "total::text", "currency",
		"COALESCE(payment_id, '')", "paid_from_webhook", "COALESCE(note, '')",
		"created_at", "updated_at",
	).
		From("orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("build get order query: %w", err)
	}

	var (
		o         order.Order
		rawStatus string
		rawTotal  string
	)
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&o.ID, &rawStatus, &rawTotal, &o.Currency,
		&o.PaymentID, &o.PaidFromWebhook, &o.Note,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return order.Order{}, order.ErrNotFound
	}
	if err != nil {
		return order.Order{}, fmt.Errorf("get order: %w", err)
	}

	o.Status = order.Status(rawStatus)
	o.Total, err = decimal.NewFromString(rawTotal)
	if err != nil {
		return order.Order{}, fmt.Errorf("invalid total in database: %w", err)
	}

	return o, nil
}

func (r *PgOrderRepo) UpdateOrder(ctx context.Context, update order.PaymentUpdate) error {
	query, args, err := r.builder.Update("orders").
		Set("status", update.Status()).
		Set("payment_id", update.PaymentID).
		Set("paid_from_webhook", update.FromWebhook).
		Set("note", update.Note()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": update.OrderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

package subscription_repo

import (
	"context"
	"fmt"

	"RenewalSync/internal/api/domain/subscription"
	"RenewalSync/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PgSubscriptionRepo is the main repository
type PgSubscriptionRepo struct {
	pg *postgres.Postgres
	repo
}

var _ subscription.SubscriptionRepo = (*PgSubscriptionRepo)(nil)

func NewPgSubscriptionRepo(pg *postgres.Postgres) *PgSubscriptionRepo {
	return &PgSubscriptionRepo{
		pg:   pg,
		repo: repo{db: pg.Pool, builder: pg.Builder},
	}
}

func (r *PgSubscriptionRepo) InTransaction(ctx context.Context, fn func(repo subscription.TxSubscriptionRepo) error) error {
	return r.pg.InTransaction(ctx, func(tx postgres.Executor) error {
		txRepo := &repo{db: tx, builder: r.pg.Builder}
		return fn(txRepo)
	})
}

// MarkFailed touches several rows per subscription, so outside a transaction it opens one.
func (r *PgSubscriptionRepo) MarkFailed(ctx context.Context, orderID string) error {
	return r.InTransaction(ctx, func(tx subscription.TxSubscriptionRepo) error {
		return tx.MarkFailed(ctx, orderID)
	})
}

type repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

func (r *repo) SubscriptionsForOrder(ctx context.Context, orderID string) ([]subscription.Subscription, error) {
	query, args, err := r.builder.Select(
		"id", "order_id", "status", "completed_payment_count", "failed_payment_count", "created_at", "updated_at",
	).
		From("platform_subscriptions").
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build subscriptions query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	return parseSubscriptionRows(rows)
}

func (r *repo) PrepareRenewal(ctx context.Context, subscriptionID string) (subscription.Renewal, error) {
	if err := r.setStatus(ctx, subscriptionID, subscription.StatusOnHold); err != nil {
		return subscription.Renewal{}, err
	}

	renewal := subscription.Renewal{
		ID:             uuid.NewString(),
		SubscriptionID: subscriptionID,
		Status:         subscription.RenewalPending,
	}
	query, args, err := r.builder.Insert("subscription_renewals").
		Columns("id", "subscription_id", "status").
		Values(renewal.ID, renewal.SubscriptionID, renewal.Status).
		ToSql()
	if err != nil {
		return subscription.Renewal{}, fmt.Errorf("build insert renewal query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return subscription.Renewal{}, fmt.Errorf("insert renewal: %w", err)
	}
	return renewal, nil
}

func (r *repo) MarkPaid(ctx context.Context, renewal subscription.Renewal, paymentID string) error {
	query, args, err := r.builder.Update("subscription_renewals").
		Set("status", subscription.RenewalPaid).
		Set("payment_id", paymentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": renewal.ID, "status": subscription.RenewalPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build pay renewal query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("pay renewal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrNoPendingRenewal
	}

	query, args, err = r.builder.Update("platform_subscriptions").
		Set("completed_payment_count", squirrel.Expr("completed_payment_count + 1")).
		Set("status", subscription.StatusActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": renewal.SubscriptionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build complete payment query: %w", err)
	}

	tag, err = r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("complete subscription payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrNotFound
	}
	return nil
}

func (r *repo) MarkFailed(ctx context.Context, orderID string) error {
	subs, err := r.SubscriptionsForOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return subscription.ErrNotFound
	}

	for _, s := range subs {
		if err := r.failRenewal(ctx, s.ID); err != nil {
			return err
		}

		query, args, err := r.builder.Update("platform_subscriptions").
			Set("failed_payment_count", squirrel.Expr("failed_payment_count + 1")).
			Set("status", subscription.StatusOnHold).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": s.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build fail subscription query: %w", err)
		}
		if _, err := r.db.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("fail subscription %s: %w", s.ID, err)
		}
	}
	return nil
}

// failRenewal fails the open renewal slot, or records a failed one when none is open.
func (r *repo) failRenewal(ctx context.Context, subscriptionID string) error {
	query, args, err := r.builder.Update("subscription_renewals").
		Set("status", subscription.RenewalFailed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"subscription_id": subscriptionID, "status": subscription.RenewalPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build fail renewal query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("fail renewal: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	query, args, err = r.builder.Insert("subscription_renewals").
		Columns("id", "subscription_id", "status").
		Values(uuid.NewString(), subscriptionID, subscription.RenewalFailed).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert failed renewal query: %w", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert failed renewal: %w", err)
	}
	return nil
}

func (r *repo) setStatus(ctx context.Context, subscriptionID string, status subscription.Status) error {
	query, args, err := r.builder.Update("platform_subscriptions").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": subscriptionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build subscription status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update subscription status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrNotFound
	}
	return nil
}

func parseSubscriptionRows(rows pgx.Rows) ([]subscription.Subscription, error) {
	var subs []subscription.Subscription
	for rows.Next() {
		var s subscription.Subscription
		var rawStatus string
		err := rows.Scan(&s.ID, &s.OrderID, &rawStatus, &s.CompletedPaymentCount, &s.FailedPaymentCount, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan subscription row: %w", err)
		}
		s.Status = subscription.Status(rawStatus)

		subs = append(subs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscription rows: %w", err)
	}

	return subs, nil
}

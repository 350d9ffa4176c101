package order

import "context"

//go:generate mockgen -source repo.go -destination mock_repo.go -package order

type OrderRepo interface {
	GetOrder(ctx context.Context, id string) (Order, error)
	UpdateOrder(ctx context.Context, update PaymentUpdate) error
}

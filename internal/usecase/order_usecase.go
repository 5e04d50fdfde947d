package usecase

import (
	"context"

	orderdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/order"
)

type OrderUsecase interface {
	CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error)

	AcceptOrder(ctx context.Context, input *orderdto.ActionInput) (*orderdto.OrderOutput, error)
	DeliverOrder(ctx context.Context, input *orderdto.ActionInput) (*orderdto.OrderOutput, error)
	RequestRevision(ctx context.Context, input *orderdto.ActionInput) (*orderdto.OrderOutput, error)
	RedeliverOrder(ctx context.Context, input *orderdto.ActionInput) (*orderdto.OrderOutput, error)
	ConfirmDelivery(ctx context.Context, input *orderdto.ActionInput) (*orderdto.OrderOutput, error)
	CancelOrder(ctx context.Context, input *orderdto.ActionInput) (*orderdto.OrderOutput, error)
	OpenDispute(ctx context.Context, input *orderdto.OpenDisputeInput) (*orderdto.OrderOutput, error)

	// Sweeps return how many orders they moved.
	CancelUnacceptedOrders(ctx context.Context) (int, error)
	RevealDeliveries(ctx context.Context) (int, error)
	AutoConfirmOrders(ctx context.Context) (int, error)

	GetOrderByID(ctx context.Context, orderID string) (*orderdto.OrderOutput, error)
	GetOrders(ctx context.Context, input *orderdto.GetOrdersInput) (*orderdto.GetOrdersOutput, error)
	GetOrderHistory(ctx context.Context, orderID string) ([]*orderdto.TransitionOutput, error)
}

package usecase

import (
	"context"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase"
	orderdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/order"
)

func (uc *DefaultOrderUsecase) GetOrderByID(ctx context.Context, orderID string) (*orderdto.OrderOutput, error) {
	order, err := uc.Store.Orders().GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return orderdto.ToOrderOutput(order), nil
}

func (uc *DefaultOrderUsecase) GetOrders(ctx context.Context, input *orderdto.GetOrdersInput) (*orderdto.GetOrdersOutput, error) {
	page, limit := usecase.NormalizePage(input.Page, input.Limit)

	orders, total, err := uc.Store.Orders().ListOrders(ctx, domain.OrderFilter{
		BuyerID:  input.BuyerID,
		SellerID: input.SellerID,
		Status:   input.Status,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]*orderdto.OrderOutput, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderdto.ToOrderOutput(o))
	}
	return &orderdto.GetOrdersOutput{
		Orders:     out,
		Pagination: orderdto.NewPagination(page, limit, total),
	}, nil
}

func (uc *DefaultOrderUsecase) GetOrderHistory(ctx context.Context, orderID string) ([]*orderdto.TransitionOutput, error) {
	if _, err := uc.Store.Orders().GetOrderByID(ctx, orderID); err != nil {
		return nil, err
	}
	transitions, err := uc.Store.Transitions().ListTransitions(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return orderdto.ToTransitionOutputs(transitions), nil
}

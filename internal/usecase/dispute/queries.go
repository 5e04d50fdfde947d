package usecase

import (
	"context"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase"
	disputedto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/dispute"
	orderdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/order"
)

func (uc *DefaultDisputeUsecase) GetDisputeByOrderID(ctx context.Context, orderID string) (*disputedto.DisputeOutput, error) {
	dispute, err := uc.Store.Disputes().GetDisputeByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return disputedto.ToDisputeOutput(dispute), nil
}

func (uc *DefaultDisputeUsecase) GetDisputes(ctx context.Context, input *disputedto.GetDisputesInput) (*disputedto.GetDisputesOutput, error) {
	page, limit := usecase.NormalizePage(input.Page, input.Limit)

	disputes, total, err := uc.Store.Disputes().ListDisputes(ctx, domain.DisputeFilter{
		OrderID: input.OrderID,
		Status:  input.Status,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]*disputedto.DisputeOutput, 0, len(disputes))
	for _, d := range disputes {
		out = append(out, disputedto.ToDisputeOutput(d))
	}
	return &disputedto.GetDisputesOutput{
		Disputes:   out,
		Pagination: orderdto.NewPagination(page, limit, total),
	}, nil
}

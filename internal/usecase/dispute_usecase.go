package usecase

import (
	"context"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	disputedto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/dispute"
)

type DisputeUsecase interface {
	ResolveDispute(ctx context.Context, input *disputedto.ResolveDisputeInput) (*domain.SettlementResult, error)
	GetDisputeByOrderID(ctx context.Context, orderID string) (*disputedto.DisputeOutput, error)
	GetDisputes(ctx context.Context, input *disputedto.GetDisputesInput) (*disputedto.GetDisputesOutput, error)
}

package mappers

import (
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainDispute(model *models.DisputeModel) *domain.Dispute {
	var outcome *domain.ResolutionOutcome
	if model.Outcome != nil {
		o := domain.ResolutionOutcome(*model.Outcome)
		outcome = &o
	}
	return &domain.Dispute{
		ID:                model.ID,
		OrderID:           model.OrderID,
		OpenedBy:          model.OpenedBy,
		Reason:            model.Reason,
		OrderStatusOpened: domain.OrderStatus(model.OrderStatusOpened),
		Status:            domain.DisputeStatus(model.Status),
		Outcome:           outcome,
		SellerShare:       model.SellerShare,
		BuyerShare:        model.BuyerShare,
		ResolverID:        model.ResolverID,
		Notes:             model.Notes,
		OpenedAt:          model.OpenedAt,
		ResolvedAt:        model.ResolvedAt,
	}
}

func ToGORMDispute(dispute *domain.Dispute) *models.DisputeModel {
	var outcome *string
	if dispute.Outcome != nil {
		o := string(*dispute.Outcome)
		outcome = &o
	}
	return &models.DisputeModel{
		ID:                dispute.ID,
		OrderID:           dispute.OrderID,
		OpenedBy:          dispute.OpenedBy,
		Reason:            dispute.Reason,
		OrderStatusOpened: string(dispute.OrderStatusOpened),
		Status:            string(dispute.Status),
		Outcome:           outcome,
		SellerShare:       dispute.SellerShare,
		BuyerShare:        dispute.BuyerShare,
		ResolverID:        dispute.ResolverID,
		Notes:             dispute.Notes,
		OpenedAt:          dispute.OpenedAt,
		ResolvedAt:        dispute.ResolvedAt,
	}
}

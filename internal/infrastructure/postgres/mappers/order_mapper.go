package mappers

import (
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID:                 model.ID,
		Number:             model.Number,
		BuyerID:            model.BuyerID,
		SellerID:           model.SellerID,
		ServiceID:          model.ServiceID,
		Amount:             model.Amount,
		Currency:           model.Currency,
		Status:             domain.OrderStatus(model.Status),
		RevisionsAllowed:   model.RevisionsAllowed,
		RevisionsUsed:      model.RevisionsUsed,
		DisputeReason:      model.DisputeReason,
		DeliveryDeadline:   model.DeliveryDeadline,
		DeliveredAt:        model.DeliveredAt,
		VisibleDeliveredAt: model.VisibleDeliveredAt,
		ConfirmDeadline:    model.ConfirmDeadline,
		DueAt:              model.DueAt,
		DisputedAt:         model.DisputedAt,
		CompletedAt:        model.CompletedAt,
		CancelledAt:        model.CancelledAt,
		ResolverID:         model.ResolverID,
		ResolutionNotes:    model.ResolutionNotes,
		Version:            model.Version,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:                 order.ID,
		Number:             order.Number,
		BuyerID:            order.BuyerID,
		SellerID:           order.SellerID,
		ServiceID:          order.ServiceID,
		Amount:             order.Amount,
		Currency:           order.Currency,
		Status:             string(order.Status),
		RevisionsAllowed:   order.RevisionsAllowed,
		RevisionsUsed:      order.RevisionsUsed,
		DisputeReason:      order.DisputeReason,
		DeliveryDeadline:   order.DeliveryDeadline,
		DeliveredAt:        order.DeliveredAt,
		VisibleDeliveredAt: order.VisibleDeliveredAt,
		ConfirmDeadline:    order.ConfirmDeadline,
		DueAt:              order.DueAt,
		DisputedAt:         order.DisputedAt,
		CompletedAt:        order.CompletedAt,
		CancelledAt:        order.CancelledAt,
		ResolverID:         order.ResolverID,
		ResolutionNotes:    order.ResolutionNotes,
		Version:            order.Version,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}

func ToDomainTransition(model *models.OrderTransitionModel) *domain.OrderTransition {
	return &domain.OrderTransition{
		ID:      model.ID,
		OrderID: model.OrderID,
		From:    domain.OrderStatus(model.FromStatus),
		To:      domain.OrderStatus(model.ToStatus),
		ActorID: model.ActorID,
		Note:    model.Note,
		At:      model.CreatedAt,
	}
}

func ToGORMTransition(t *domain.OrderTransition) *models.OrderTransitionModel {
	return &models.OrderTransitionModel{
		ID:         t.ID,
		OrderID:    t.OrderID,
		FromStatus: string(t.From),
		ToStatus:   string(t.To),
		ActorID:    t.ActorID,
		Note:       t.Note,
		CreatedAt:  t.At,
	}
}

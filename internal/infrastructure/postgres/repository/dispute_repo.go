package repository

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DisputeRepository struct {
	db *gorm.DB
}

func (r *DisputeRepository) CreateDispute(ctx context.Context, dispute *domain.Dispute) error {
	if err := r.db.WithContext(ctx).Create(mappers.ToGORMDispute(dispute)).Error; err != nil {
		return fmt.Errorf("failed to create dispute: %w", err)
	}
	return nil
}

func (r *DisputeRepository) GetOpenDisputeForUpdate(ctx context.Context, orderID string) (*domain.Dispute, error) {
	var model models.DisputeModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ? AND status = ?", orderID, string(domain.DisputeOpen)).
		First(&model).Error; err != nil {
		return nil, notFound(err, "open dispute for order", orderID)
	}
	return mappers.ToDomainDispute(&model), nil
}

func (r *DisputeRepository) UpdateDispute(ctx context.Context, dispute *domain.Dispute) error {
	res := r.db.WithContext(ctx).
		Model(&models.DisputeModel{}).
		Where("id = ?", dispute.ID).
		Select("*").Omit("id", "order_id", "opened_at").
		Updates(mappers.ToGORMDispute(dispute))
	if res.Error != nil {
		return fmt.Errorf("failed to update dispute %s: %w", dispute.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("dispute %s: %w", dispute.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *DisputeRepository) GetDisputeByOrderID(ctx context.Context, orderID string) (*domain.Dispute, error) {
	var model models.DisputeModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("opened_at DESC").
		First(&model).Error; err != nil {
		return nil, notFound(err, "dispute for order", orderID)
	}
	return mappers.ToDomainDispute(&model), nil
}

func (r *DisputeRepository) ListDisputes(ctx context.Context, filter domain.DisputeFilter) ([]*domain.Dispute, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.DisputeModel{})
	if filter.OrderID != "" {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count disputes: %w", err)
	}

	var rows []models.DisputeModel
	if err := query.
		Order("opened_at DESC").
		Offset(pageOffset(filter.Page, filter.Limit)).
		Limit(filter.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list disputes: %w", err)
	}

	disputes := make([]*domain.Dispute, len(rows))
	for i := range rows {
		disputes[i] = mappers.ToDomainDispute(&rows[i])
	}
	return disputes, total, nil
}

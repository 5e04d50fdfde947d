package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	if err := r.db.WithContext(ctx).Create(mappers.ToGORMOrder(order)).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", orderID).Error; err != nil {
		return nil, notFound(err, "order", orderID)
	}
	return mappers.ToDomainOrder(&model), nil
}

func (r *OrderRepository) GetOrderForUpdate(ctx context.Context, orderID string) (*domain.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", orderID).Error; err != nil {
		return nil, notFound(err, "order", orderID)
	}
	return mappers.ToDomainOrder(&model), nil
}

func (r *OrderRepository) UpdateOrder(ctx context.Context, order *domain.Order) error {
	model := mappers.ToGORMOrder(order)
	model.Version = order.Version + 1

	res := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if res.Error != nil {
		return fmt.Errorf("failed to update order %s: %w", order.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s version %d: %w", order.ID, order.Version, domain.ErrConcurrentUpdate)
	}
	order.Version = model.Version
	return nil
}

func (r *OrderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	if filter.BuyerID != "" {
		query = query.Where("buyer_id = ?", filter.BuyerID)
	}
	if filter.SellerID != "" {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orderModels []models.OrderModel
	if err := query.
		Order("created_at DESC").
		Offset(pageOffset(filter.Page, filter.Limit)).
		Limit(filter.Limit).
		Find(&orderModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find orders: %w", err)
	}

	orders := make([]*domain.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModels[i])
	}
	return orders, total, nil
}

func (r *OrderRepository) CountOpenOrders(ctx context.Context, buyerID, sellerID string) (int64, error) {
	statuses := make([]string, len(domain.OpenStatuses))
	for i, s := range domain.OpenStatuses {
		statuses[i] = string(s)
	}

	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("buyer_id = ? AND seller_id = ? AND status IN ?", buyerID, sellerID, statuses).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count open orders: %w", err)
	}
	return n, nil
}

func (r *OrderRepository) FindDueOrders(ctx context.Context, status domain.OrderStatus, now time.Time, limit int) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("status = ? AND due_at IS NOT NULL AND due_at <= ?", string(status), now).
		Order("due_at").
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to find due orders: %w", err)
	}
	return ids, nil
}

func (r *OrderRepository) GetBuyerStats(ctx context.Context, buyerID string) (domain.OrderStats, error) {
	var stats domain.OrderStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE status IN (@completed, @cancelled))                          AS total,
			COUNT(*) FILTER (WHERE status = @completed)                                         AS completed,
			COUNT(*) FILTER (WHERE status = @cancelled)                                         AS cancelled,
			COUNT(*) FILTER (WHERE status IN (@completed, @cancelled) AND disputed_at IS NOT NULL) AS disputed,
			COUNT(*) FILTER (WHERE status = @disputed)                                          AS active_disputes
		FROM orders
		WHERE buyer_id = @buyer`,
		map[string]any{
			"completed": string(domain.StatusCompleted),
			"cancelled": string(domain.StatusCancelled),
			"disputed":  string(domain.StatusDisputed),
			"buyer":     buyerID,
		},
	).Scan(&stats).Error
	if err != nil {
		return domain.OrderStats{}, fmt.Errorf("failed to load buyer stats: %w", err)
	}
	return stats, nil
}

type TransitionRepository struct {
	db *gorm.DB
}

func (r *TransitionRepository) AppendTransition(ctx context.Context, t *domain.OrderTransition) error {
	if err := r.db.WithContext(ctx).Create(mappers.ToGORMTransition(t)).Error; err != nil {
		return fmt.Errorf("failed to append transition: %w", err)
	}
	return nil
}

func (r *TransitionRepository) ListTransitions(ctx context.Context, orderID string) ([]*domain.OrderTransition, error) {
	var rows []models.OrderTransitionModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("seq").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list transitions: %w", err)
	}
	out := make([]*domain.OrderTransition, len(rows))
	for i := range rows {
		out[i] = mappers.ToDomainTransition(&rows[i])
	}
	return out, nil
}

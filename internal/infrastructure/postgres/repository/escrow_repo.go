package repository

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EscrowRepository struct {
	db *gorm.DB
}

func (r *EscrowRepository) CreateEscrow(ctx context.Context, escrow *domain.Escrow) error {
	if err := r.db.WithContext(ctx).Create(mappers.ToGORMEscrow(escrow)).Error; err != nil {
		return fmt.Errorf("failed to create escrow: %w", err)
	}
	return nil
}

func (r *EscrowRepository) GetEscrow(ctx context.Context, orderID string) (*domain.Escrow, error) {
	var model models.EscrowModel
	if err := r.db.WithContext(ctx).First(&model, "order_id = ?", orderID).Error; err != nil {
		return nil, notFound(err, "escrow", orderID)
	}
	return mappers.ToDomainEscrow(&model), nil
}

func (r *EscrowRepository) GetEscrowForUpdate(ctx context.Context, orderID string) (*domain.Escrow, error) {
	var model models.EscrowModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "order_id = ?", orderID).Error; err != nil {
		return nil, notFound(err, "escrow", orderID)
	}
	return mappers.ToDomainEscrow(&model), nil
}

func (r *EscrowRepository) UpdateEscrow(ctx context.Context, escrow *domain.Escrow) error {
	model := mappers.ToGORMEscrow(escrow)
	model.Version = escrow.Version + 1

	res := r.db.WithContext(ctx).
		Model(&models.EscrowModel{}).
		Where("order_id = ? AND version = ?", escrow.OrderID, escrow.Version).
		Select("*").Omit("order_id", "created_at").
		Updates(model)
	if res.Error != nil {
		return fmt.Errorf("failed to update escrow %s: %w", escrow.OrderID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("escrow %s version %d: %w", escrow.OrderID, escrow.Version, domain.ErrConcurrentUpdate)
	}
	escrow.Version = model.Version
	return nil
}

func (r *EscrowRepository) SumHolding(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.EscrowModel{}).
		Select("COALESCE(SUM(held_amount), 0)").
		Where("status = ?", string(domain.EscrowHolding)).
		Row().Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum holding escrows: %w", err)
	}
	return sum, nil
}

type BalanceRepository struct {
	db *gorm.DB
}

func (r *BalanceRepository) GetBalanceForUpdate(ctx context.Context, userID string) (*domain.Balance, error) {
	db := r.db.WithContext(ctx)
	empty := models.BalanceModel{UserID: userID, Version: 1, UpdatedAt: db.NowFunc()}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&empty).Error; err != nil {
		return nil, fmt.Errorf("failed to ensure balance %s: %w", userID, err)
	}

	var model models.BalanceModel
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err, "balance", userID)
	}
	return mappers.ToDomainBalance(&model), nil
}

func (r *BalanceRepository) GetBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	var model models.BalanceModel
	if err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err, "balance", userID)
	}
	return mappers.ToDomainBalance(&model), nil
}

func (r *BalanceRepository) UpdateBalance(ctx context.Context, balance *domain.Balance) error {
	model := mappers.ToGORMBalance(balance)
	model.Version = balance.Version + 1

	res := r.db.WithContext(ctx).
		Model(&models.BalanceModel{}).
		Where("user_id = ? AND version = ?", balance.UserID, balance.Version).
		Select("available", "frozen", "version", "updated_at").
		Updates(model)
	if res.Error != nil {
		return fmt.Errorf("failed to update balance %s: %w", balance.UserID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("balance %s version %d: %w", balance.UserID, balance.Version, domain.ErrConcurrentUpdate)
	}
	balance.Version = model.Version
	return nil
}

func (r *BalanceRepository) SumFrozen(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.BalanceModel{}).
		Select("COALESCE(SUM(frozen), 0)").
		Row().Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum frozen funds: %w", err)
	}
	return sum, nil
}

type LedgerRepository struct {
	db *gorm.DB
}

func (r *LedgerRepository) AppendEntries(ctx context.Context, entries ...*domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]*models.LedgerEntryModel, len(entries))
	for i, e := range entries {
		rows[i] = mappers.ToGORMLedgerEntry(e)
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to append ledger entries: %w", err)
	}
	return nil
}

func (r *LedgerRepository) ListEntries(ctx context.Context, orderID string) ([]*domain.LedgerEntry, error) {
	var rows []models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("seq").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	out := make([]*domain.LedgerEntry, len(rows))
	for i := range rows {
		out[i] = mappers.ToDomainLedgerEntry(&rows[i])
	}
	return out, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type IdempotencyRepository struct {
	db *gorm.DB
}

func (r *IdempotencyRepository) GetRecord(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	var model models.IdempotencyKeyModel
	if err := r.db.WithContext(ctx).First(&model, "key = ?", key).Error; err != nil {
		return nil, notFound(err, "idempotency key", key)
	}
	return &domain.IdempotencyRecord{
		Key:         model.Key,
		Operation:   model.Operation,
		OrderID:     model.OrderID,
		Fingerprint: model.Fingerprint,
		Response:    []byte(model.Response),
		CreatedAt:   model.CreatedAt,
	}, nil
}

func (r *IdempotencyRepository) SaveRecord(ctx context.Context, record *domain.IdempotencyRecord) error {
	err := r.db.WithContext(ctx).Create(&models.IdempotencyKeyModel{
		Key:         record.Key,
		Operation:   record.Operation,
		OrderID:     record.OrderID,
		Fingerprint: record.Fingerprint,
		Response:    string(record.Response),
		CreatedAt:   record.CreatedAt,
	}).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("key %q: %w", record.Key, domain.ErrDuplicateIdempotencyKey)
	}
	if err != nil {
		return fmt.Errorf("failed to save idempotency key: %w", err)
	}
	return nil
}

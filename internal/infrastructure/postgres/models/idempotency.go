package models

import "time"

type IdempotencyKeyModel struct {
	Key         string `gorm:"primaryKey"`
	Operation   string
	OrderID     string
	Fingerprint string
	Response    string `gorm:"type:jsonb"`
	CreatedAt   time.Time
}

func (IdempotencyKeyModel) TableName() string {
	return "idempotency_keys"
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DisputeModel struct {
	ID                string `gorm:"primaryKey;type:uuid"`
	OrderID           string `gorm:"type:uuid;index"`
	OpenedBy          string
	Reason            string
	OrderStatusOpened string
	Status            string
	Outcome           *string
	SellerShare       decimal.Decimal `gorm:"type:numeric(18,2)"`
	BuyerShare        decimal.Decimal `gorm:"type:numeric(18,2)"`
	ResolverID        *string
	Notes             *string
	OpenedAt          time.Time
	ResolvedAt        *time.Time
}

func (DisputeModel) TableName() string {
	return "disputes"
}

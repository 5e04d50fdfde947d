package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderModel struct {
	ID                 string `gorm:"primaryKey;type:uuid"`
	Number             string `gorm:"uniqueIndex;size:32"`
	BuyerID            string `gorm:"index:idx_orders_buyer_seller"`
	SellerID           string `gorm:"index:idx_orders_buyer_seller"`
	ServiceID          string
	Amount             decimal.Decimal `gorm:"type:numeric(18,2)"`
	Currency           string
	Status             string `gorm:"index:idx_orders_status_due"`
	RevisionsAllowed   int
	RevisionsUsed      int
	DisputeReason      *string
	DeliveryDeadline   time.Time
	DeliveredAt        *time.Time
	VisibleDeliveredAt *time.Time
	ConfirmDeadline    *time.Time
	DueAt              *time.Time `gorm:"index:idx_orders_status_due"`
	DisputedAt         *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	ResolverID         *string
	ResolutionNotes    *string
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
}

func (OrderModel) TableName() string {
	return "orders"
}

type OrderTransitionModel struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	Seq        int64  `gorm:"->"`
	OrderID    string `gorm:"type:uuid;index"`
	FromStatus string
	ToStatus   string
	ActorID    string
	Note       string
	CreatedAt  time.Time
}

func (OrderTransitionModel) TableName() string {
	return "order_transitions"
}

package models

import "time"

// Channel represents the sales channel an order came through
type Channel string

const (
	ChannelDirect    Channel = "direct"
	ChannelWholesale Channel = "wholesale"
)

// Order is a read-only view over the order store, consumed only by the
// command-center stats aggregation. Order capture itself lives outside
// this service.
type Order struct {
	Base
	Channel  Channel   `gorm:"not null;default:'direct'" json:"channel"`
	Total    int64     `gorm:"type:bigint;not null" json:"total"`
	PlacedAt time.Time `gorm:"not null;index" json:"placed_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// OrderItem is one product line on an Order.
type OrderItem struct {
	Base
	OrderID     uint   `gorm:"not null;index" json:"order_id"`
	ProductName string `gorm:"not null" json:"product_name"`
	Quantity    int64  `gorm:"not null" json:"quantity"`
	UnitPrice   int64  `gorm:"type:bigint;not null" json:"unit_price"`
}

// FunnelStage represents one stage of the conversion funnel
type FunnelStage string

const (
	FunnelStageVisit    FunnelStage = "visit"
	FunnelStageCart     FunnelStage = "cart"
	FunnelStageCheckout FunnelStage = "checkout"
	FunnelStagePurchase FunnelStage = "purchase"
)

// FunnelEvent is one recorded conversion-funnel event.
type FunnelEvent struct {
	Base
	Stage      FunnelStage `gorm:"not null;index" json:"stage"`
	OccurredAt time.Time   `gorm:"not null;index" json:"occurred_at"`
}

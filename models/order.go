package models

import "time"

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	OrderStatusPending   OrderStatus = "Pending"   // placed, awaiting dispatch
	OrderStatusShipped   OrderStatus = "Shipped"   // out for delivery
	OrderStatusDelivered OrderStatus = "Delivered" // customer received the order

	// Payment statuses for the ONLINE two-step flow; COD orders are
	// created already paid-on-delivery and never transition.
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"

	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

type Order struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	Total float64 `json:"total"`

	// Shipping details, defaulted at checkout when omitted.
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`

	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	PaymentMethod PaymentMethod `gorm:"type:VARCHAR(20);default:'COD'" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`

	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderItem snapshots the plant name and price at purchase time; later
// catalog edits must not alter order history.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	PlantID   uint    `json:"plant_id"`
	PlantName string  `json:"plant_name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

package models

import "time"

// CartItem is a persisted cart line for a logged-in user. The composite
// unique index enforces at most one line per (user, plant); adds merge
// into the existing row.
type CartItem struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   string    `gorm:"uniqueIndex:idx_cart_user_plant;not null" json:"user_id"`
	PlantID  uint      `gorm:"uniqueIndex:idx_cart_user_plant;not null" json:"plant_id"`
	Plant    Plant     `gorm:"foreignKey:PlantID" json:"plant,omitempty"`
	Quantity int       `gorm:"not null" json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

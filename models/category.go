package models

type Category struct {
	ID     uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string  `gorm:"unique;not null" json:"name"`
	Plants []Plant `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"plants,omitempty"`
}

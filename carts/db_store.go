package carts

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sudipta-bhowmick/plant-nursery-api/models"
)

// DBStore keeps cart lines in the cart_items table, one row per
// (user, plant). Mutations run inside a transaction so concurrent adds
// from two tabs merge instead of clobbering each other.
type DBStore struct {
	db     *gorm.DB
	userID string
}

func NewDBStore(db *gorm.DB, userID string) *DBStore {
	return &DBStore{db: db, userID: userID}
}

func (s *DBStore) Add(plantID uint, quantity int) (int, error) {
	var stored int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var plant models.Plant
		if err := tx.First(&plant, plantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlantNotFound
			}
			return err
		}

		quantity = clampToStock(quantity, plant.Stock)

		var item models.CartItem
		err := tx.Where("user_id = ? AND plant_id = ?", s.userID, plantID).First(&item).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			item = models.CartItem{
				UserID:   s.userID,
				PlantID:  plantID,
				Quantity: quantity,
				AddedAt:  time.Now(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			stored = item.Quantity
			return nil
		}

		item.Quantity = clampToStock(item.Quantity+quantity, plant.Stock)
		item.AddedAt = time.Now()
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		stored = item.Quantity
		return nil
	})
	return stored, err
}

func (s *DBStore) Lines() ([]Line, float64, error) {
	var items []models.CartItem
	if err := s.db.Preload("Plant").Where("user_id = ?", s.userID).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	lines := make([]Line, 0, len(items))
	var total float64
	for _, item := range items {
		subtotal := item.Plant.Price * float64(item.Quantity)
		total += subtotal
		lines = append(lines, Line{
			Plant:    item.Plant,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
	}
	return lines, total, nil
}

func (s *DBStore) Remove(plantID uint) error {
	return s.db.Where("user_id = ? AND plant_id = ?", s.userID, plantID).
		Delete(&models.CartItem{}).Error
}

func (s *DBStore) Clear() error {
	return s.db.Where("user_id = ?", s.userID).Delete(&models.CartItem{}).Error
}

package carts

import (
	"encoding/gob"
	"errors"
	"strconv"

	"github.com/gin-contrib/sessions"
	"gorm.io/gorm"

	"github.com/sudipta-bhowmick/plant-nursery-api/models"
)

const sessionCartKey = "cart"

// The cookie store gob-encodes session values.
func init() {
	gob.Register(map[string]int{})
}

// SessionStore keeps the anonymous visitor's cart as a plant-id → quantity
// map in the cookie session. It still reads plants from the DB so clamping
// and subtotals follow the same rules as the persisted cart.
type SessionStore struct {
	db      *gorm.DB
	session sessions.Session
}

func NewSessionStore(db *gorm.DB, session sessions.Session) *SessionStore {
	return &SessionStore{db: db, session: session}
}

func (s *SessionStore) cart() map[string]int {
	if raw, ok := s.session.Get(sessionCartKey).(map[string]int); ok {
		return raw
	}
	return map[string]int{}
}

func (s *SessionStore) save(cart map[string]int) error {
	s.session.Set(sessionCartKey, cart)
	return s.session.Save()
}

func (s *SessionStore) Add(plantID uint, quantity int) (int, error) {
	var plant models.Plant
	if err := s.db.First(&plant, plantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrPlantNotFound
		}
		return 0, err
	}

	cart := s.cart()
	key := strconv.FormatUint(uint64(plantID), 10)
	stored := clampToStock(cart[key]+clampToStock(quantity, plant.Stock), plant.Stock)
	cart[key] = stored

	if err := s.save(cart); err != nil {
		return 0, err
	}
	return stored, nil
}

func (s *SessionStore) Lines() ([]Line, float64, error) {
	cart := s.cart()

	lines := make([]Line, 0, len(cart))
	var total float64
	for key, quantity := range cart {
		plantID, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			continue
		}

		var plant models.Plant
		if err := s.db.First(&plant, uint(plantID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Plant removed from the catalog since it was added.
				continue
			}
			return nil, 0, err
		}

		subtotal := plant.Price * float64(quantity)
		total += subtotal
		lines = append(lines, Line{Plant: plant, Quantity: quantity, Subtotal: subtotal})
	}
	return lines, total, nil
}

func (s *SessionStore) Remove(plantID uint) error {
	cart := s.cart()
	key := strconv.FormatUint(uint64(plantID), 10)
	if _, ok := cart[key]; !ok {
		return nil
	}
	delete(cart, key)
	return s.save(cart)
}

func (s *SessionStore) Clear() error {
	s.session.Delete(sessionCartKey)
	return s.session.Save()
}

package carts

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sudipta-bhowmick/plant-nursery-api/models"
)

var ErrPlantNotFound = errors.New("plant not found")

// Line is one (plant, quantity) pairing in a cart.
type Line struct {
	Plant    models.Plant `json:"plant"`
	Quantity int          `json:"quantity"`
	Subtotal float64      `json:"subtotal"`
}

// Store is the cart contract shared by logged-in users (rows in the
// cart_items table) and anonymous visitors (a quantity map in the
// cookie session). Quantities are always clamped to the plant's stock:
// adding can never push a line above what is actually sellable.
type Store interface {
	// Add merges quantity into the line for plantID, clamped to stock,
	// and returns the stored quantity after clamping.
	Add(plantID uint, quantity int) (int, error)

	// Lines returns the cart contents with per-line subtotals and the
	// aggregate total.
	Lines() ([]Line, float64, error)

	// Remove deletes the line for plantID; removing an absent line is
	// not an error.
	Remove(plantID uint) error

	// Clear deletes every line. Used after a successful checkout.
	Clear() error
}

// ForRequest picks the backend for the caller: the DB-backed store when
// the session middleware resolved a user, the session-backed store
// otherwise. The two never share state.
func ForRequest(c *gin.Context, db *gorm.DB) Store {
	if userID, exists := c.Get("user_id"); exists {
		return NewDBStore(db, userID.(string))
	}
	return NewSessionStore(db, sessions.Default(c))
}

func clampToStock(quantity, stock int) int {
	if quantity > stock {
		return stock
	}
	return quantity
}

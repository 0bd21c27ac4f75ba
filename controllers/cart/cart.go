package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sudipta-bhowmick/plant-nursery-api/carts"
)

type AddToCartInput struct {
	Quantity int `form:"quantity" json:"quantity"`
}

// POST /plant/:id/
// Adds the plant to the caller's cart. Logged-in users get a DB line,
// anonymous visitors a session line; both clamp the merged quantity to
// the plant's stock.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		plantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plant ID"})
			return
		}

		input := AddToCartInput{Quantity: 1}
		if err := c.ShouldBind(&input); err != nil || input.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
			return
		}

		store := carts.ForRequest(c, db)
		stored, err := store.Add(uint(plantID), input.Quantity)
		if err != nil {
			if errors.Is(err, carts.ErrPlantNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Plant not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "Added to cart",
			"quantity": stored,
		})
	}
}

// GET /cart/
func ViewCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := carts.ForRequest(c, db)
		lines, total, err := store.Lines()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": lines,
			"total": total,
		})
	}
}

// GET|POST /remove/:id/
// Removing a plant that is not in the cart is a no-op, not an error.
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		plantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plant ID"})
			return
		}

		store := carts.ForRequest(c, db)
		if err := store.Remove(uint(plantID)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Removed from cart"})
	}
}

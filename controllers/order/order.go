package orderControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sudipta-bhowmick/plant-nursery-api/carts"
	"github.com/sudipta-bhowmick/plant-nursery-api/models"
	"github.com/sudipta-bhowmick/plant-nursery-api/notifier"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrOutOfStock           = errors.New("insufficient stock")
	ErrPlantNotFound        = errors.New("plant not found")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrAlreadyPaid          = errors.New("payment already confirmed")
)

// -------- Request Structs --------

type CheckoutRequest struct {
	Name          string `form:"name" json:"name"`
	Phone         string `form:"phone" json:"phone"`
	Address       string `form:"address" json:"address"`
	City          string `form:"city" json:"city"`
	Pincode       string `form:"pincode" json:"pincode"`
	PaymentMethod string `form:"payment_method" json:"payment_method" binding:"required"`
}

func (r *CheckoutRequest) applyDefaults() {
	if r.Name == "" {
		r.Name = "Customer"
	}
	if r.Address == "" {
		r.Address = "Address not provided"
	}
	if r.Phone == "" {
		r.Phone = "0000000000"
	}
	if r.City == "" {
		r.City = "City"
	}
	if r.Pincode == "" {
		r.Pincode = "000000"
	}
}

// -------- Helpers --------

func mapPaymentMethod(method string) (models.PaymentMethod, error) {
	switch method {
	case string(models.PaymentMethodCOD):
		return models.PaymentMethodCOD, nil
	case string(models.PaymentMethodOnline):
		return models.PaymentMethodOnline, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// decrementStock is a conditional decrement: it only succeeds when the
// plant still has the requested quantity, so two concurrent checkouts
// against the last unit cannot both win. Availability flips off the
// moment stock hits zero.
func decrementStock(tx *gorm.DB, plant *models.Plant, quantity int) error {
	res := tx.Model(&models.Plant{}).
		Where("id = ? AND stock >= ?", plant.ID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w for plant: %s", ErrOutOfStock, plant.Name)
	}
	return tx.Model(&models.Plant{}).
		Where("id = ? AND stock = 0", plant.ID).
		Update("available", false).Error
}

func notifyOrderPlaced(user *models.User, order *models.Order) {
	go func() {
		if err := notifier.SendOrderConfirmation(user.Email, order.Name, order.ID, order.Total); err != nil {
			log.Printf("Failed to send confirmation for order %d to %s: %v", order.ID, user.Email, err)
		}
	}()
}

// -------- Core Logic --------

// placeOrder turns the user's cart into an Order inside one transaction.
//
// COD finalizes immediately: order items are created with snapshot
// prices, stock is decremented, and the cart is cleared. ONLINE creates
// the order and snapshots the cart into order items up front but leaves
// stock and cart untouched; ConfirmPayment later finalizes from that
// snapshot, so edits to the cart between the two steps cannot change
// what gets charged.
func placeOrder(db *gorm.DB, user *models.User, req CheckoutRequest) (*models.Order, error) {
	method, err := mapPaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	lines, _, err := carts.NewDBStore(db, user.ID).Lines()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	var order models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		var total float64
		var items []models.OrderItem

		for _, line := range lines {
			var plant models.Plant
			if err := tx.First(&plant, line.Plant.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrPlantNotFound, line.Plant.Name)
				}
				return err
			}

			if method == models.PaymentMethodCOD {
				if err := decrementStock(tx, &plant, line.Quantity); err != nil {
					return err
				}
			}

			total += plant.Price * float64(line.Quantity)
			items = append(items, models.OrderItem{
				PlantID:   plant.ID,
				PlantName: plant.Name,
				Quantity:  line.Quantity,
				Price:     plant.Price,
			})
		}

		order = models.Order{
			UserID:        user.ID,
			Total:         total,
			Name:          req.Name,
			Address:       req.Address,
			Phone:         req.Phone,
			City:          req.City,
			Pincode:       req.Pincode,
			Status:        models.OrderStatusPending,
			PaymentMethod: method,
			PaymentStatus: models.PaymentStatusPending,
			Items:         items,
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if method == models.PaymentMethodCOD {
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// finalizePayment completes an ONLINE order: stock is decremented per the
// order-item snapshot and the cart is cleared, all in one transaction.
// The status flip is conditional on the order still being pending, so a
// second confirmation of the same order fails with ErrAlreadyPaid
// instead of consuming the snapshot twice.
func finalizePayment(db *gorm.DB, order *models.Order) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND payment_status = ?", order.ID, models.PaymentStatusPending).
			Update("payment_status", models.PaymentStatusPaid)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyPaid
		}

		for _, item := range order.Items {
			var plant models.Plant
			if err := tx.First(&plant, item.PlantID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrPlantNotFound, item.PlantName)
				}
				return err
			}
			if err := decrementStock(tx, &plant, item.Quantity); err != nil {
				return err
			}
		}

		return tx.Where("user_id = ?", order.UserID).Delete(&models.CartItem{}).Error
	})
}

// -------- Handlers --------

// GET /checkout/ shows what is about to be ordered.
func CheckoutSummary(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*models.User)

		lines, total, err := carts.NewDBStore(db, user.ID).Lines()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": lines, "total": total})
	}
}

// POST /checkout/
func Checkout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*models.User)

		var req CheckoutRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		req.applyDefaults()

		order, err := placeOrder(db, user, req)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			case errors.Is(err, ErrOutOfStock):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			case errors.Is(err, ErrPlantNotFound):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			case errors.Is(err, ErrInvalidPaymentMethod):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		if order.PaymentMethod == models.PaymentMethodOnline {
			c.JSON(http.StatusCreated, gin.H{
				"order":    order,
				"redirect": fmt.Sprintf("/payment/%d/", order.ID),
			})
			return
		}

		notifyOrderPlaced(user, order)
		c.JSON(http.StatusCreated, gin.H{
			"order":    order,
			"redirect": fmt.Sprintf("/order-success/%d/", order.ID),
		})
	}
}

// GET /payment/:order_id/ shows the demo payment page for a pending
// ONLINE order.
func PaymentPage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*models.User)

		order, status, errMsg := loadOwnedOrder(db, c.Param("order_id"), user.ID)
		if order == nil {
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// POST /payment/:order_id/ confirms the demo payment and finalizes the
// order. A second confirmation is rejected, so stock cannot be
// decremented twice.
func ConfirmPayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*models.User)

		order, status, errMsg := loadOwnedOrder(db, c.Param("order_id"), user.ID)
		if order == nil {
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		if order.PaymentMethod != models.PaymentMethodOnline {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order does not use online payment"})
			return
		}
		if order.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(http.StatusConflict, gin.H{"error": "Payment already confirmed"})
			return
		}

		if err := finalizePayment(db, order); err != nil {
			switch {
			case errors.Is(err, ErrAlreadyPaid):
				c.JSON(http.StatusConflict, gin.H{"error": "Payment already confirmed"})
			case errors.Is(err, ErrOutOfStock), errors.Is(err, ErrPlantNotFound):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment"})
			}
			return
		}

		order.PaymentStatus = models.PaymentStatusPaid
		notifyOrderPlaced(user, order)
		c.JSON(http.StatusOK, gin.H{
			"order":    order,
			"redirect": fmt.Sprintf("/order-success/%d/", order.ID),
		})
	}
}

// loadOwnedOrder fetches an order with its items and enforces ownership:
// missing orders are 404, someone else's orders are 403.
func loadOwnedOrder(db *gorm.DB, orderIDParam, userID string) (*models.Order, int, string) {
	orderID, err := strconv.ParseUint(orderIDParam, 10, 64)
	if err != nil {
		return nil, http.StatusBadRequest, "Invalid order ID"
	}

	var order models.Order
	if err := db.Preload("Items").First(&order, uint(orderID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.StatusNotFound, "Order not found"
		}
		return nil, http.StatusInternalServerError, "Failed to fetch order"
	}

	if order.UserID != userID {
		return nil, http.StatusForbidden, "Order does not belong to you"
	}
	return &order, http.StatusOK, ""
}

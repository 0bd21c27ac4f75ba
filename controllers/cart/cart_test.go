package cartControllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sudipta-bhowmick/plant-nursery-api/auth"
	"github.com/sudipta-bhowmick/plant-nursery-api/middleware"
	"github.com/sudipta-bhowmick/plant-nursery-api/models"
	"github.com/sudipta-bhowmick/plant-nursery-api/routes"
)

func setupCartTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Category{}, &models.Plant{},
		&models.CartItem{}, &models.Order{}, &models.OrderItem{})
	if err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	store := cookie.NewStore([]byte("test-secret-key"))
	r.Use(sessions.Sessions("nurserysess", store))
	r.Use(middleware.LoadUser(db))
	routes.SetupRoutes(r, db)

	return r, db
}

func seedCartTestPlant(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Plant {
	category := models.Category{Name: "Indoor-" + name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	plant := models.Plant{
		Name:       name,
		Price:      price,
		CategoryID: category.ID,
		Stock:      stock,
		Available:  stock > 0,
	}
	if err := db.Create(&plant).Error; err != nil {
		t.Fatalf("failed to seed plant: %v", err)
	}
	return plant
}

func seedCartTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// performRequest sends a form request carrying any cookies from prior
// responses, so guest sessions survive across calls the way a browser's
// would.
func performRequest(router *gin.Engine, method, path, form string, cookies []*http.Cookie, token string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(form))
	if form != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestGuestCartClampAndMerge(t *testing.T) {
	router, db := setupCartTestRouter(t)
	plant := seedCartTestPlant(t, db, "Monstera", 10.00, 5)

	// First add: 3 of 5 in stock.
	rec := performRequest(router, http.MethodPost, fmt.Sprintf("/plant/%d/", plant.ID), "quantity=3", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var addResp struct {
		Quantity int `json:"quantity"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &addResp))
	assert.Equal(t, 3, addResp.Quantity)

	cookies := rec.Result().Cookies()

	// Second add merges and clamps: 3+4 caps at stock 5, not 7.
	rec = performRequest(router, http.MethodPost, fmt.Sprintf("/plant/%d/", plant.ID), "quantity=4", cookies, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &addResp))
	assert.Equal(t, 5, addResp.Quantity)

	// The session cookie is rewritten on every save; keep only the latest.
	if latest := rec.Result().Cookies(); len(latest) > 0 {
		cookies = latest
	}

	rec = performRequest(router, http.MethodGet, "/cart/", "", cookies, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var cartResp struct {
		Items []struct {
			Quantity int     `json:"quantity"`
			Subtotal float64 `json:"subtotal"`
		} `json:"items"`
		Total float64 `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cartResp))
	assert.Len(t, cartResp.Items, 1)
	assert.Equal(t, 5, cartResp.Items[0].Quantity)
	assert.Equal(t, 50.00, cartResp.Items[0].Subtotal)
	assert.Equal(t, 50.00, cartResp.Total)

	// Guest carts never touch the cart_items table.
	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGuestCartRemove(t *testing.T) {
	router, db := setupCartTestRouter(t)
	plant := seedCartTestPlant(t, db, "Fern", 4.50, 3)

	rec := performRequest(router, http.MethodPost, fmt.Sprintf("/plant/%d/", plant.ID), "quantity=2", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()

	rec = performRequest(router, http.MethodGet, fmt.Sprintf("/remove/%d/", plant.ID), "", cookies, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	if latest := rec.Result().Cookies(); len(latest) > 0 {
		cookies = latest
	}

	rec = performRequest(router, http.MethodGet, "/cart/", "", cookies, "")
	var cartResp struct {
		Items []json.RawMessage `json:"items"`
		Total float64           `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cartResp))
	assert.Empty(t, cartResp.Items)

	// Removing an absent line is a no-op, not an error.
	rec = performRequest(router, http.MethodGet, fmt.Sprintf("/remove/%d/", plant.ID), "", cookies, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAddUnknownPlant(t *testing.T) {
	router, _ := setupCartTestRouter(t)

	rec := performRequest(router, http.MethodPost, "/plant/999/", "quantity=1", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddInvalidQuantity(t *testing.T) {
	router, db := setupCartTestRouter(t)
	plant := seedCartTestPlant(t, db, "Cactus", 7.00, 3)

	rec := performRequest(router, http.MethodPost, fmt.Sprintf("/plant/%d/", plant.ID), "quantity=0", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserCartMergesIntoSingleLine(t *testing.T) {
	router, db := setupCartTestRouter(t)
	plant := seedCartTestPlant(t, db, "Palm", 12.00, 5)
	user := seedCartTestUser(t, db, "alice")

	token, err := auth.IssueUserToken(user.ID)
	assert.NoError(t, err)

	rec := performRequest(router, http.MethodPost, fmt.Sprintf("/plant/%d/", plant.ID), "quantity=3", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = performRequest(router, http.MethodPost, fmt.Sprintf("/plant/%d/", plant.ID), "quantity=4", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var items []models.CartItem
	assert.NoError(t, db.Where("user_id = ?", user.ID).Find(&items).Error)
	assert.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestGuestAndUserCartsDoNotLeak(t *testing.T) {
	router, db := setupCartTestRouter(t)
	plant := seedCartTestPlant(t, db, "Aloe", 5.00, 10)
	user := seedCartTestUser(t, db, "bob")

	// Guest adds to the session cart.
	rec := performRequest(router, http.MethodPost, fmt.Sprintf("/plant/%d/", plant.ID), "quantity=2", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// The logged-in user's cart is empty.
	token, err := auth.IssueUserToken(user.ID)
	assert.NoError(t, err)
	rec = performRequest(router, http.MethodGet, "/cart/", "", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var cartResp struct {
		Items []json.RawMessage `json:"items"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cartResp))
	assert.Empty(t, cartResp.Items)
}

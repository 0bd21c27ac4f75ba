package carts

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sudipta-bhowmick/plant-nursery-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Plant{}, &models.CartItem{}); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}
	return db
}

func seedPlant(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Plant {
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

func TestDBStoreAddClampsToStock(t *testing.T) {
	db := newTestDB(t)
	plant := seedPlant(t, db, "Monstera", 10.00, 5)
	store := NewDBStore(db, "user-1")

	qty, err := store.Add(plant.ID, 3)
	assert.NoError(t, err)
	assert.Equal(t, 3, qty)

	lines, total, err := store.Lines()
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, 30.00, lines[0].Subtotal)
	assert.Equal(t, 30.00, total)

	// Second add merges and re-clamps against stock: 3+4 caps at 5.
	qty, err = store.Add(plant.ID, 4)
	assert.NoError(t, err)
	assert.Equal(t, 5, qty)

	lines, total, err = store.Lines()
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 50.00, total)

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDBStoreAddOversizedFirstRequest(t *testing.T) {
	db := newTestDB(t)
	plant := seedPlant(t, db, "Fern", 4.50, 2)
	store := NewDBStore(db, "user-1")

	qty, err := store.Add(plant.ID, 10)
	assert.NoError(t, err)
	assert.Equal(t, 2, qty)
}

func TestDBStoreAddUnknownPlant(t *testing.T) {
	db := newTestDB(t)
	store := NewDBStore(db, "user-1")

	_, err := store.Add(999, 1)
	assert.ErrorIs(t, err, ErrPlantNotFound)
}

func TestDBStoreRemoveAbsentLineIsNoop(t *testing.T) {
	db := newTestDB(t)
	plant := seedPlant(t, db, "Cactus", 7.00, 3)
	store := NewDBStore(db, "user-1")

	assert.NoError(t, store.Remove(plant.ID))

	_, err := store.Add(plant.ID, 2)
	assert.NoError(t, err)
	assert.NoError(t, store.Remove(plant.ID))

	lines, total, err := store.Lines()
	assert.NoError(t, err)
	assert.Empty(t, lines)
	assert.Equal(t, 0.00, total)
}

func TestDBStoreClear(t *testing.T) {
	db := newTestDB(t)
	p1 := seedPlant(t, db, "Aloe", 5.00, 4)
	p2 := seedPlant(t, db, "Bonsai", 25.00, 4)
	store := NewDBStore(db, "user-1")

	_, err := store.Add(p1.ID, 1)
	assert.NoError(t, err)
	_, err = store.Add(p2.ID, 2)
	assert.NoError(t, err)

	assert.NoError(t, store.Clear())

	lines, _, err := store.Lines()
	assert.NoError(t, err)
	assert.Empty(t, lines)
}

func TestDBStoreCartsAreIndependentPerUser(t *testing.T) {
	db := newTestDB(t)
	plant := seedPlant(t, db, "Palm", 12.00, 10)

	alice := NewDBStore(db, "alice")
	bob := NewDBStore(db, "bob")

	_, err := alice.Add(plant.ID, 2)
	assert.NoError(t, err)
	_, err = bob.Add(plant.ID, 7)
	assert.NoError(t, err)

	aliceLines, _, err := alice.Lines()
	assert.NoError(t, err)
	assert.Equal(t, 2, aliceLines[0].Quantity)

	bobLines, _, err := bob.Lines()
	assert.NoError(t, err)
	assert.Equal(t, 7, bobLines[0].Quantity)

	assert.NoError(t, alice.Clear())

	bobLines, _, err = bob.Lines()
	assert.NoError(t, err)
	assert.Len(t, bobLines, 1)
}

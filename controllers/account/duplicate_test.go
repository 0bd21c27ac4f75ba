package accountControllers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sudipta-bhowmick/plant-nursery-api/models"
)

// A registration losing the race past the pre-check hits the unique
// index; that failure must read as a duplicate, not a server error.
func TestDuplicateUsernameIsRecognizedFromTheUniqueIndex(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}

	first := models.User{ID: uuid.NewString(), Username: "daisy", Email: "daisy@example.com", PasswordHash: "x"}
	assert.NoError(t, db.Create(&first).Error)

	second := models.User{ID: uuid.NewString(), Username: "daisy", Email: "other@example.com", PasswordHash: "x"}
	createErr := db.Create(&second).Error
	assert.Error(t, createErr)
	assert.True(t, isDuplicateUsername(createErr))

	assert.True(t, isDuplicateUsername(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateUsername(errors.New(`duplicate key value violates unique constraint "uni_users_username"`)))
	assert.False(t, isDuplicateUsername(errors.New("connection refused")))
}

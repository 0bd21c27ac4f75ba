package catalogControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sudipta-bhowmick/plant-nursery-api/models"
)

type CreateCategoryInput struct {
	Name string `json:"name" binding:"required"`
}

type CreatePlantInput struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	Stock       int     `json:"stock" binding:"min=0"`
}

// POST /admin/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var existing models.Category
		if err := db.Where("name = ?", input.Name).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
			return
		}

		category := models.Category{Name: input.Name}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}

		c.JSON(http.StatusCreated, category)
	}
}

// POST /admin/plants
func CreatePlant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreatePlantInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var category models.Category
		if err := db.First(&category, input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate category"})
			}
			return
		}

		plant := models.Plant{
			Name:        input.Name,
			Price:       input.Price,
			Description: input.Description,
			Image:       input.Image,
			CategoryID:  input.CategoryID,
			Stock:       input.Stock,
			Available:   input.Stock > 0,
		}
		if err := db.Create(&plant).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plant"})
			return
		}

		c.JSON(http.StatusCreated, plant)
	}
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborview/harborview-rentals-api/config"
	"github.com/harborview/harborview-rentals-api/models"
)

// CreatePropertyRequest represents the request body for creating a property
type CreatePropertyRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"omitempty"`
	State   string `json:"state" binding:"omitempty"`
	ZipCode string `json:"zip_code" binding:"omitempty"`
}

// CreateUnitRequest represents the request body for adding a unit to a property
type CreateUnitRequest struct {
	UnitNumber  string  `json:"unit_number" binding:"required"`
	Bedrooms    int     `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms   int     `json:"bathrooms" binding:"omitempty,gte=0"`
	MonthlyRent float64 `json:"monthly_rent" binding:"omitempty,gte=0"`
}

// CreateProperty handles POST /api/v1/properties (landlords only)
func CreateProperty(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	if user.Role != models.RoleLandlord {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only landlords can create properties",
			},
		})
		return
	}

	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	property := models.Property{
		LandlordID: user.ID,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		ZipCode:    req.ZipCode,
	}

	db := config.GetDB()
	if err := db.Create(&property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create property",
			},
		})
		return
	}

	if err := db.Preload("Landlord").First(&property, property.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load property details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    property,
	})
}

// ListProperties handles GET /api/v1/properties
// Landlords see their own properties; admins see all.
func ListProperties(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.Property{})

	switch user.Role {
	case models.RoleLandlord:
		query = query.Where("landlord_id = ?", user.ID)
	case models.RoleAdmin:
		// unrestricted
	default:
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to list properties",
			},
		})
		return
	}

	var properties []models.Property
	if err := query.
		Preload("Units").
		Order("created_at DESC").
		Find(&properties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch properties",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    properties,
	})
}

// GetProperty handles GET /api/v1/properties/:id (owner or admin)
func GetProperty(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var property models.Property
	if err := db.Preload("Landlord").Preload("Units").First(&property, propertyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROPERTY_NOT_FOUND",
				"message": "Property not found",
			},
		})
		return
	}

	if user.Role != models.RoleAdmin && property.LandlordID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to view this property",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    property,
	})
}

// ListUnits handles GET /api/v1/properties/:id/units (owner or admin)
func ListUnits(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var property models.Property
	if err := db.First(&property, propertyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROPERTY_NOT_FOUND",
				"message": "Property not found",
			},
		})
		return
	}

	if user.Role != models.RoleAdmin && property.LandlordID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to view this property",
			},
		})
		return
	}

	var units []models.Unit
	if err := db.Where("property_id = ?", property.ID).
		Order("unit_number ASC").
		Find(&units).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch units",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    units,
	})
}

// CreateUnit handles POST /api/v1/properties/:id/units (owner or admin)
func CreateUnit(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var property models.Property
	if err := db.First(&property, propertyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROPERTY_NOT_FOUND",
				"message": "Property not found",
			},
		})
		return
	}

	if user.Role != models.RoleAdmin && property.LandlordID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to add units to this property",
			},
		})
		return
	}

	var req CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	unit := models.Unit{
		PropertyID:  property.ID,
		UnitNumber:  req.UnitNumber,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		MonthlyRent: req.MonthlyRent,
	}

	if err := db.Create(&unit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create unit",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    unit,
	})
}

package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harborview/harborview-rentals-api/config"
	"github.com/harborview/harborview-rentals-api/models"
)

// CreateLeaseRequest represents the request body for creating a lease
type CreateLeaseRequest struct {
	UnitID        uint      `json:"unit_id" binding:"required"`
	TenantID      uint      `json:"tenant_id" binding:"required"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
	MonthlyRent   float64   `json:"monthly_rent" binding:"required,gt=0"`
	DepositAmount float64   `json:"deposit_amount" binding:"omitempty,gte=0"`
}

// CreateLease handles POST /api/v1/leases
// The landlord owning the unit's property (or an admin) binds a tenant
// to a unit.
func CreateLease(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req CreateLeaseRequest
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

	if !req.EndDate.After(req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "end_date must be after start_date",
			},
		})
		return
	}

	db := config.GetDB()
	var unit models.Unit
	if err := db.Preload("Property").First(&unit, req.UnitID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNIT_NOT_FOUND",
				"message": "Unit not found",
			},
		})
		return
	}

	if user.Role != models.RoleAdmin &&
		!(user.Role == models.RoleLandlord && unit.Property.LandlordID == user.ID) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only the property's landlord or an admin can create a lease",
			},
		})
		return
	}

	var tenant models.User
	if err := db.First(&tenant, req.TenantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "Tenant not found",
			},
		})
		return
	}
	if tenant.Role != models.RoleTenant {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ARGUMENT",
				"message": "Target user is not a tenant",
			},
		})
		return
	}

	lease := models.Lease{
		UnitID:        unit.ID,
		TenantID:      tenant.ID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		MonthlyRent:   req.MonthlyRent,
		DepositAmount: req.DepositAmount,
		Active:        true,
	}

	if err := db.Create(&lease).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create lease",
			},
		})
		return
	}

	if err := db.Preload("Tenant").Preload("Unit").First(&lease, lease.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load lease details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    lease,
	})
}

// ListLeases handles GET /api/v1/leases
// Tenants see their own leases, landlords the leases within their
// properties, admins all.
func ListLeases(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.Lease{})

	switch user.Role {
	case models.RoleTenant:
		query = query.Where("leases.tenant_id = ?", user.ID)
	case models.RoleLandlord:
		query = query.
			Joins("JOIN units ON units.id = leases.unit_id").
			Joins("JOIN properties ON properties.id = units.property_id").
			Where("properties.landlord_id = ?", user.ID)
	case models.RoleAdmin:
		// unrestricted
	default:
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to list leases",
			},
		})
		return
	}

	var leases []models.Lease
	if err := query.
		Preload("Tenant").
		Preload("Unit").
		Order("leases.created_at DESC").
		Find(&leases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch leases",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    leases,
	})
}

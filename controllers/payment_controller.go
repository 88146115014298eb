package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harborview/harborview-rentals-api/config"
	"github.com/harborview/harborview-rentals-api/models"
)

// CreatePaymentRequest represents the request body for recording a rent payment
type CreatePaymentRequest struct {
	LeaseID uint    `json:"lease_id" binding:"required"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Method  string  `json:"method" binding:"omitempty"`
	Notes   string  `json:"notes" binding:"omitempty"`
}

// CreatePayment handles POST /api/v1/payments (tenants only, own active lease)
func CreatePayment(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	if user.Role != models.RoleTenant {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only tenants can record rent payments",
			},
		})
		return
	}

	var req CreatePaymentRequest
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

	db := config.GetDB()
	var lease models.Lease
	if err := db.First(&lease, req.LeaseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LEASE_NOT_FOUND",
				"message": "Lease not found",
			},
		})
		return
	}

	if lease.TenantID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You can only pay rent on your own lease",
			},
		})
		return
	}

	if !lease.Active {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATE",
				"message": "Lease is not active",
			},
		})
		return
	}

	method := req.Method
	if method == "" {
		method = "card"
	}

	payment := models.Payment{
		LeaseID:     lease.ID,
		TenantID:    user.ID,
		Amount:      req.Amount,
		PaymentDate: time.Now(),
		Method:      method,
		Status:      "completed",
		Notes:       req.Notes,
	}

	if err := db.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to record payment",
			},
		})
		return
	}

	if err := db.Preload("Tenant").Preload("Lease").First(&payment, payment.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load payment details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    payment,
	})
}

// ListPayments handles GET /api/v1/payments
// Tenants see their own payments, landlords the payments within their
// properties, admins all.
func ListPayments(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.Payment{})

	switch user.Role {
	case models.RoleTenant:
		query = query.Where("payments.tenant_id = ?", user.ID)
	case models.RoleLandlord:
		query = query.
			Joins("JOIN leases ON leases.id = payments.lease_id").
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
				"message": "You do not have permission to list payments",
			},
		})
		return
	}

	var payments []models.Payment
	if err := query.
		Preload("Tenant").
		Preload("Lease").
		Order("payments.payment_date DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch payments",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    payments,
	})
}

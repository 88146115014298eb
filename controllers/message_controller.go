package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborview/harborview-rentals-api/config"
	"github.com/harborview/harborview-rentals-api/models"
	"github.com/harborview/harborview-rentals-api/services"
)

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SendMessage handles POST /api/v1/maintenance-requests/:id/messages
// Anyone who can view the request (tenant-creator, assigned workman,
// landlord-owner, admin) can message on its thread.
func SendMessage(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var request models.MaintenanceRequest
	if err := db.Preload("Unit.Property").First(&request, requestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REQUEST_NOT_FOUND",
				"message": "Maintenance request not found",
			},
		})
		return
	}

	if !services.CanViewRequest(user, request) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to message on this request",
			},
		})
		return
	}

	var req SendMessageRequest
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

	message := models.Message{
		MaintenanceRequestID: request.ID,
		SenderID:             user.ID,
		Text:                 req.Text,
	}

	if err := db.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create message",
			},
		})
		return
	}

	// Load the sender relationship to return complete data
	if err := db.Preload("Sender").First(&message, message.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load message details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    message,
	})
}

// ListMessages handles GET /api/v1/maintenance-requests/:id/messages
func ListMessages(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var request models.MaintenanceRequest
	if err := db.Preload("Unit.Property").First(&request, requestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REQUEST_NOT_FOUND",
				"message": "Maintenance request not found",
			},
		})
		return
	}

	if !services.CanViewRequest(user, request) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to view messages on this request",
			},
		})
		return
	}

	var messages []models.Message
	if err := db.Where("maintenance_request_id = ?", request.ID).
		Preload("Sender").
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch messages",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

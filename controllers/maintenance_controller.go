package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harborview/harborview-rentals-api/config"
	"github.com/harborview/harborview-rentals-api/models"
	"github.com/harborview/harborview-rentals-api/services"
	"gorm.io/gorm"
)

// errConcurrentTransition signals that a conditional status update
// matched zero rows: another caller changed the status first.
var errConcurrentTransition = errors.New("status changed concurrently")

// CreateRequestBody represents the request body for creating a maintenance request
type CreateRequestBody struct {
	UnitID      uint   `json:"unit_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority" binding:"omitempty"`
	Category    string `json:"category" binding:"omitempty"`
}

// UpdateRequestStatusBody represents the request body for a status transition
type UpdateRequestStatusBody struct {
	Status string `json:"status" binding:"required"`
}

// RateRequestBody represents the request body for rating a completed request
type RateRequestBody struct {
	Rating   int     `json:"rating" binding:"required,gte=1,lte=5"`
	Feedback *string `json:"feedback" binding:"omitempty"`
}

// CreateMaintenanceRequest handles POST /api/v1/maintenance-requests (tenants only)
func CreateMaintenanceRequest(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	// Only tenants report maintenance issues
	if user.Role != models.RoleTenant {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only tenants can create maintenance requests",
			},
		})
		return
	}

	var req CreateRequestBody
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

	priority := models.PriorityMedium
	if req.Priority != "" {
		parsed, err := models.ParseRequestPriority(req.Priority)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid priority",
					"details": err.Error(),
				},
			})
			return
		}
		priority = parsed
	}

	// Validate the unit exists
	db := config.GetDB()
	var unit models.Unit
	if err := db.First(&unit, req.UnitID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNIT_NOT_FOUND",
				"message": "Unit not found",
			},
		})
		return
	}

	request := models.MaintenanceRequest{
		UnitID:      unit.ID,
		TenantID:    user.ID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Status:      models.RequestStatusPending,
		Category:    req.Category,
	}

	if err := db.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create maintenance request",
			},
		})
		return
	}

	// Load the relationships to return complete data
	if err := db.Preload("Tenant").Preload("Unit").First(&request, request.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load request details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    request,
	})
}

// ListMaintenanceRequests handles GET /api/v1/maintenance-requests
// Results are scoped to what the caller may see and ordered newest first.
// Optional query filters: status, priority.
func ListMaintenanceRequests(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.MaintenanceRequest{}).
		Scopes(services.ScopeVisibleRequests(user))

	if statusFilter := c.Query("status"); statusFilter != "" {
		status, err := models.ParseRequestStatus(statusFilter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid status filter",
					"details": err.Error(),
				},
			})
			return
		}
		query = query.Where("maintenance_requests.status = ?", status)
	}

	if priorityFilter := c.Query("priority"); priorityFilter != "" {
		priority, err := models.ParseRequestPriority(priorityFilter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid priority filter",
					"details": err.Error(),
				},
			})
			return
		}
		query = query.Where("maintenance_requests.priority = ?", priority)
	}

	var requests []models.MaintenanceRequest
	if err := query.
		Preload("Tenant").
		Preload("Unit").
		Preload("Workman").
		Order("maintenance_requests.created_at DESC").
		Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch maintenance requests",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
	})
}

// GetMaintenanceRequestStats handles GET /api/v1/maintenance-requests/stats
// Per-status counts over the caller's visible requests. The same
// visibility scope backs ListMaintenanceRequests, so total always
// equals the length of an unfiltered list call.
func GetMaintenanceRequestStats(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var rows []struct {
		Status models.RequestStatus
		Count  int64
	}
	if err := db.Model(&models.MaintenanceRequest{}).
		Scopes(services.ScopeVisibleRequests(user)).
		Select("maintenance_requests.status AS status, COUNT(*) AS count").
		Group("maintenance_requests.status").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to compute request statistics",
			},
		})
		return
	}

	stats := gin.H{
		"pending":     int64(0),
		"approved":    int64(0),
		"in_progress": int64(0),
		"completed":   int64(0),
		"total":       int64(0),
	}
	var total int64
	for _, row := range rows {
		total += row.Count
		switch row.Status {
		case models.RequestStatusPending:
			stats["pending"] = row.Count
		case models.RequestStatusApproved:
			stats["approved"] = row.Count
		case models.RequestStatusInProgress:
			stats["in_progress"] = row.Count
		case models.RequestStatusCompleted:
			stats["completed"] = row.Count
		}
		// rejected and assigned requests count toward total only
	}
	stats["total"] = total

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

// GetMaintenanceRequest handles GET /api/v1/maintenance-requests/:id
func GetMaintenanceRequest(c *gin.Context) {
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
	if err := db.
		Preload("Tenant").
		Preload("Unit.Property").
		Preload("Workman").
		First(&request, requestID).Error; err != nil {
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
				"message": "You do not have permission to view this request",
			},
		})
		return
	}

	// Attach a presigned URL when a photo exists
	if request.PhotoS3Key != nil && *request.PhotoS3Key != "" {
		if photoService := services.GetPhotoService(); photoService != nil {
			if url, err := photoService.GetPhotoURL(*request.PhotoS3Key); err == nil && url != "" {
				request.PhotoURL = &url
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    request,
	})
}

// UpdateMaintenanceRequestStatus handles PUT /api/v1/maintenance-requests/:id/status
func UpdateMaintenanceRequestStatus(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var body UpdateRequestStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
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

	newStatus, err := models.ParseRequestStatus(body.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid status",
				"details": err.Error(),
			},
		})
		return
	}

	// Workman binding happens through the assign endpoint, which also
	// creates the work order; a bare status flip would leave the
	// request assigned with no workman.
	if newStatus == models.RequestStatusAssigned {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ARGUMENT",
				"message": "Use the assign endpoint to assign a workman",
			},
		})
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

	if !request.Status.CanTransitionTo(newStatus) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": "Cannot transition request from " + string(request.Status) + " to " + string(newStatus),
			},
		})
		return
	}

	// Approval and rejection are review decisions; later transitions
	// may also come from the assigned workman.
	authorized := false
	switch newStatus {
	case models.RequestStatusApproved, models.RequestStatusRejected:
		authorized = services.CanReviewRequest(user, request)
	default:
		authorized = services.CanUpdateRequestStatus(user, request)
	}
	if !authorized {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to update this request",
			},
		})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": newStatus}
		if newStatus == models.RequestStatusCompleted {
			now := time.Now()
			updates["resolved_at"] = &now
		}

		// Conditional update: the transition precondition is re-checked
		// at write time so concurrent transitions cannot both win.
		result := tx.Model(&models.MaintenanceRequest{}).
			Where("id = ? AND status = ?", request.ID, request.Status).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errConcurrentTransition
		}

		// Completing the request directly also closes its work order,
		// keeping the two lifecycles consistent.
		if newStatus == models.RequestStatusCompleted {
			now := time.Now()
			if err := tx.Model(&models.WorkOrder{}).
				Where("maintenance_request_id = ? AND status IN ?", request.ID,
					[]models.WorkOrderStatus{models.WorkOrderStatusAssigned, models.WorkOrderStatusInProgress, models.WorkOrderStatusOnHold}).
				Updates(map[string]interface{}{
					"status":         models.WorkOrderStatusCompleted,
					"completed_date": &now,
				}).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, errConcurrentTransition) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TRANSITION",
					"message": "Request status changed concurrently; transition no longer valid",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update request status",
			},
		})
		return
	}

	if err := db.Preload("Tenant").Preload("Unit").Preload("Workman").First(&request, request.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load request details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    request,
	})
}

// RateMaintenanceRequest handles POST /api/v1/maintenance-requests/:id/rating
// Only the original tenant may rate, only after completion, only once.
func RateMaintenanceRequest(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var body RateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
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
	var request models.MaintenanceRequest
	if err := db.First(&request, requestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REQUEST_NOT_FOUND",
				"message": "Maintenance request not found",
			},
		})
		return
	}

	if user.Role != models.RoleTenant || request.TenantID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only the tenant who created the request can rate it",
			},
		})
		return
	}

	if request.Status != models.RequestStatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATE",
				"message": "Only completed requests can be rated",
			},
		})
		return
	}

	if request.TenantRating != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATE",
				"message": "Request has already been rated",
			},
		})
		return
	}

	updates := map[string]interface{}{"tenant_rating": body.Rating}
	if body.Feedback != nil {
		updates["tenant_feedback"] = body.Feedback
	}

	// Guard against a concurrent first rating
	result := db.Model(&models.MaintenanceRequest{}).
		Where("id = ? AND tenant_rating IS NULL", request.ID).
		Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save rating",
			},
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATE",
				"message": "Request has already been rated",
			},
		})
		return
	}

	if err := db.Preload("Tenant").Preload("Unit").Preload("Workman").First(&request, request.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load request details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    request,
	})
}

// UploadRequestPhoto handles POST /api/v1/maintenance-requests/:id/photo
// Attaches a photo to the request (tenant-creator only).
func UploadRequestPhoto(c *gin.Context) {
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
	if err := db.First(&request, requestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REQUEST_NOT_FOUND",
				"message": "Maintenance request not found",
			},
		})
		return
	}

	if user.Role != models.RoleTenant || request.TenantID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only the tenant who created the request can attach a photo",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "A photo file is required",
			},
		})
		return
	}

	photoService := services.GetPhotoService()
	if photoService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": "Photo storage is not configured",
			},
		})
		return
	}

	photoKey, err := photoService.UploadPhoto(fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	if err := db.Model(&request).Update("photo_s3_key", photoKey).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save photo reference",
			},
		})
		return
	}

	url, _ := photoService.GetPhotoURL(photoKey)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"photo_s3_key": photoKey,
			"photo_url":    url,
		},
	})
}

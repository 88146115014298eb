package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harborview/harborview-rentals-api/config"
	"github.com/harborview/harborview-rentals-api/models"
	"github.com/harborview/harborview-rentals-api/services"
	"gorm.io/gorm"
)

// AssignWorkmanBody represents the request body for assigning a workman
type AssignWorkmanBody struct {
	WorkmanID       uint    `json:"workman_id" binding:"required"`
	WorkDescription string  `json:"work_description" binding:"required"`
	EstimatedHours  float64 `json:"estimated_hours" binding:"required,gt=0"`
	Materials       string  `json:"materials" binding:"omitempty"`
	Instructions    string  `json:"instructions" binding:"omitempty"`
}

// UpdateWorkOrderStatusBody represents the request body for a work order transition
type UpdateWorkOrderStatusBody struct {
	Status      string   `json:"status" binding:"required"`
	Notes       string   `json:"notes" binding:"omitempty"`
	ActualHours *float64 `json:"actual_hours" binding:"omitempty,gt=0"`
}

// AssignWorkman handles PUT /api/v1/maintenance-requests/:id/assign
// Creates the work order and moves the request to assigned in one
// transaction. The status flip is a conditional update, so two
// concurrent assignments cannot both succeed.
func AssignWorkman(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var body AssignWorkmanBody
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

	// Assignment is only meaningful on an approved request; this is
	// checked before target validation and authorization.
	if request.Status != models.RequestStatusApproved {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATE",
				"message": "Only approved requests can be assigned",
			},
		})
		return
	}

	// The target must be a workman
	var workman models.User
	if err := db.First(&workman, body.WorkmanID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "Workman not found",
			},
		})
		return
	}
	if workman.Role != models.RoleWorkman {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ARGUMENT",
				"message": "Target user is not a workman",
			},
		})
		return
	}

	if !services.CanAssignWorkman(user, request) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to assign a workman to this request",
			},
		})
		return
	}

	now := time.Now()
	workOrder := models.WorkOrder{
		MaintenanceRequestID: request.ID,
		WorkmanID:            workman.ID,
		WorkDescription:      body.WorkDescription,
		EstimatedHours:       body.EstimatedHours,
		Materials:            body.Materials,
		Instructions:         body.Instructions,
		Status:               models.WorkOrderStatusAssigned,
		AssignedDate:         now,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Conditional flip of the request status; zero rows means a
		// concurrent assignment won the race.
		result := tx.Model(&models.MaintenanceRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestStatusApproved).
			Updates(map[string]interface{}{
				"status":     models.RequestStatusAssigned,
				"workman_id": workman.ID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errConcurrentTransition
		}

		if err := tx.Create(&workOrder).Error; err != nil {
			return err
		}

		// The number embeds the database ID, so it is set after insert
		workOrder.WorkOrderNumber = services.FormatWorkOrderNumber(now, workOrder.ID)
		return tx.Model(&workOrder).
			Update("work_order_number", workOrder.WorkOrderNumber).Error
	})
	if err != nil {
		if err == errConcurrentTransition {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATE",
					"message": "Request was assigned concurrently",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to assign workman",
			},
		})
		return
	}

	if err := db.Preload("Workman").First(&workOrder, workOrder.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load work order details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    workOrder,
	})
}

// ListWorkOrders handles GET /api/v1/work-orders
// Workmen see their own orders newest-assigned first; landlords see
// orders within their properties; admins see all.
func ListWorkOrders(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.WorkOrder{})

	switch user.Role {
	case models.RoleWorkman:
		query = query.Where("work_orders.workman_id = ?", user.ID)
	case models.RoleLandlord:
		query = query.
			Joins("JOIN maintenance_requests ON maintenance_requests.id = work_orders.maintenance_request_id").
			Joins("JOIN units ON units.id = maintenance_requests.unit_id").
			Joins("JOIN properties ON properties.id = units.property_id").
			Where("properties.landlord_id = ?", user.ID)
	case models.RoleAdmin:
		// unrestricted
	default:
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to list work orders",
			},
		})
		return
	}

	if statusFilter := c.Query("status"); statusFilter != "" {
		status, err := models.ParseWorkOrderStatus(statusFilter)
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
		query = query.Where("work_orders.status = ?", status)
	}

	var workOrders []models.WorkOrder
	if err := query.
		Preload("Workman").
		Order("work_orders.assigned_date DESC").
		Find(&workOrders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch work orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    workOrders,
	})
}

// UpdateWorkOrderStatus handles PUT /api/v1/work-orders/:id/status
// Moving to in_progress carries the parent request along; completion
// cascades to the parent and stamps resolved_at, atomically.
// Cancellation returns the parent to approved and clears its workman
// so it can be reassigned; that edge exists only as this cascade, the
// request status endpoint never accepts it.
func UpdateWorkOrderStatus(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	workOrderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var body UpdateWorkOrderStatusBody
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

	newStatus, err := models.ParseWorkOrderStatus(body.Status)
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

	db := config.GetDB()
	var workOrder models.WorkOrder
	if err := db.
		Preload("MaintenanceRequest.Unit.Property").
		First(&workOrder, workOrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "WORK_ORDER_NOT_FOUND",
				"message": "Work order not found",
			},
		})
		return
	}

	if !services.CanUpdateWorkOrder(user, workOrder, workOrder.MaintenanceRequest) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to update this work order",
			},
		})
		return
	}

	if !workOrder.Status.CanTransitionTo(newStatus) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": "Cannot transition work order from " + string(workOrder.Status) + " to " + string(newStatus),
			},
		})
		return
	}

	now := time.Now()
	err = db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": newStatus}
		if body.Notes != "" {
			updates["notes"] = body.Notes
		}
		if body.ActualHours != nil {
			updates["actual_hours"] = body.ActualHours
		}
		switch newStatus {
		case models.WorkOrderStatusInProgress:
			if workOrder.StartedDate == nil {
				updates["started_date"] = &now
			}
		case models.WorkOrderStatusCompleted:
			updates["completed_date"] = &now
		}

		// Conditional update so a concurrent transition loses cleanly
		result := tx.Model(&models.WorkOrder{}).
			Where("id = ? AND status = ?", workOrder.ID, workOrder.Status).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errConcurrentTransition
		}

		// Keep the parent request in step with the work
		switch newStatus {
		case models.WorkOrderStatusInProgress:
			if err := tx.Model(&models.MaintenanceRequest{}).
				Where("id = ? AND status = ?", workOrder.MaintenanceRequestID, models.RequestStatusAssigned).
				Update("status", models.RequestStatusInProgress).Error; err != nil {
				return err
			}
		case models.WorkOrderStatusCompleted:
			result := tx.Model(&models.MaintenanceRequest{}).
				Where("id = ? AND status = ?", workOrder.MaintenanceRequestID, models.RequestStatusInProgress).
				Updates(map[string]interface{}{
					"status":      models.RequestStatusCompleted,
					"resolved_at": &now,
				})
			if result.Error != nil {
				return result.Error
			}
		case models.WorkOrderStatusCancelled:
			// A cancelled work order frees the request for reassignment
			if err := tx.Model(&models.MaintenanceRequest{}).
				Where("id = ?", workOrder.MaintenanceRequestID).
				Updates(map[string]interface{}{
					"status":     models.RequestStatusApproved,
					"workman_id": nil,
				}).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if err == errConcurrentTransition {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TRANSITION",
					"message": "Work order status changed concurrently; transition no longer valid",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update work order status",
			},
		})
		return
	}

	if err := db.Preload("Workman").First(&workOrder, workOrder.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load work order details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    workOrder,
	})
}

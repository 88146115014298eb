package services

import (
	"github.com/harborview/harborview-rentals-api/models"
	"gorm.io/gorm"
)

// Authorization rules for maintenance requests and work orders.
// Every decision takes the acting user explicitly; nothing here reads
// ambient session state. Callers must load the request with its
// Unit.Property so ownership can be decided without extra queries.

// IsLandlordOwner reports whether the actor is a landlord who owns the
// property containing the request's unit.
func IsLandlordOwner(actor models.User, request models.MaintenanceRequest) bool {
	return actor.Role == models.RoleLandlord && request.Unit.Property.LandlordID == actor.ID
}

// CanReviewRequest reports whether the actor may approve or reject the
// request: admins, or the landlord owning the property.
func CanReviewRequest(actor models.User, request models.MaintenanceRequest) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	return IsLandlordOwner(actor, request)
}

// CanAssignWorkman follows the same ownership rule as review.
func CanAssignWorkman(actor models.User, request models.MaintenanceRequest) bool {
	return CanReviewRequest(actor, request)
}

// CanUpdateRequestStatus reports whether the actor may drive the
// request through its lifecycle: the landlord-owner, an admin, or the
// workman assigned to the request.
func CanUpdateRequestStatus(actor models.User, request models.MaintenanceRequest) bool {
	if CanReviewRequest(actor, request) {
		return true
	}
	return actor.Role == models.RoleWorkman &&
		request.WorkmanID != nil && *request.WorkmanID == actor.ID
}

// CanUpdateWorkOrder reports whether the actor may change the work
// order's status: the bound workman, the landlord-owner, or an admin.
func CanUpdateWorkOrder(actor models.User, workOrder models.WorkOrder, request models.MaintenanceRequest) bool {
	if actor.Role == models.RoleWorkman {
		return workOrder.WorkmanID == actor.ID
	}
	return CanReviewRequest(actor, request)
}

// CanViewRequest reports whether the actor may read the request.
// Tenants see their own requests, workmen the requests assigned to
// them, landlords the requests within properties they own, admins
// everything.
func CanViewRequest(actor models.User, request models.MaintenanceRequest) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleTenant:
		return request.TenantID == actor.ID
	case models.RoleWorkman:
		return request.WorkmanID != nil && *request.WorkmanID == actor.ID
	case models.RoleLandlord:
		return IsLandlordOwner(actor, request)
	}
	return false
}

// ScopeVisibleRequests returns a GORM scope restricting a
// maintenance_requests query to the rows the actor may see. List
// endpoints and the stats aggregator share this scope so their counts
// always agree.
func ScopeVisibleRequests(actor models.User) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch actor.Role {
		case models.RoleAdmin:
			return db
		case models.RoleTenant:
			return db.Where("maintenance_requests.tenant_id = ?", actor.ID)
		case models.RoleWorkman:
			return db.Where("maintenance_requests.workman_id = ?", actor.ID)
		case models.RoleLandlord:
			return db.
				Joins("JOIN units ON units.id = maintenance_requests.unit_id").
				Joins("JOIN properties ON properties.id = units.property_id").
				Where("properties.landlord_id = ?", actor.ID)
		}
		// Unknown role sees nothing
		return db.Where("1 = 0")
	}
}

package services

import (
	"testing"

	"github.com/harborview/harborview-rentals-api/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// buildRequest returns a request on a unit in a property owned by
// landlordID, created by tenantID, optionally assigned to workmanID.
func buildRequest(tenantID, landlordID uint, workmanID *uint) models.MaintenanceRequest {
	return models.MaintenanceRequest{
		TenantID:  tenantID,
		WorkmanID: workmanID,
		Unit: models.Unit{
			Property: models.Property{LandlordID: landlordID},
		},
	}
}

func TestCanReviewRequest(t *testing.T) {
	owner := models.User{ID: 10, Role: models.RoleLandlord}
	otherLandlord := models.User{ID: 11, Role: models.RoleLandlord}
	admin := models.User{ID: 12, Role: models.RoleAdmin}
	tenant := models.User{ID: 13, Role: models.RoleTenant}
	workman := models.User{ID: 14, Role: models.RoleWorkman}

	request := buildRequest(tenant.ID, owner.ID, nil)

	assert.True(t, CanReviewRequest(owner, request), "owning landlord can review")
	assert.True(t, CanReviewRequest(admin, request), "admin can review")
	assert.False(t, CanReviewRequest(otherLandlord, request), "non-owner landlord cannot review")
	assert.False(t, CanReviewRequest(tenant, request), "tenant cannot review")
	assert.False(t, CanReviewRequest(workman, request), "workman cannot review")
}

func TestCanUpdateRequestStatus(t *testing.T) {
	owner := models.User{ID: 10, Role: models.RoleLandlord}
	admin := models.User{ID: 12, Role: models.RoleAdmin}
	assigned := models.User{ID: 14, Role: models.RoleWorkman}
	otherWorkman := models.User{ID: 15, Role: models.RoleWorkman}

	workmanID := assigned.ID
	request := buildRequest(13, owner.ID, &workmanID)

	assert.True(t, CanUpdateRequestStatus(owner, request))
	assert.True(t, CanUpdateRequestStatus(admin, request))
	assert.True(t, CanUpdateRequestStatus(assigned, request), "assigned workman can update")
	assert.False(t, CanUpdateRequestStatus(otherWorkman, request), "unassigned workman cannot update")

	// No workman bound yet
	unassigned := buildRequest(13, owner.ID, nil)
	assert.False(t, CanUpdateRequestStatus(assigned, unassigned))
}

func TestCanUpdateWorkOrder(t *testing.T) {
	owner := models.User{ID: 10, Role: models.RoleLandlord}
	otherLandlord := models.User{ID: 11, Role: models.RoleLandlord}
	admin := models.User{ID: 12, Role: models.RoleAdmin}
	bound := models.User{ID: 14, Role: models.RoleWorkman}
	otherWorkman := models.User{ID: 15, Role: models.RoleWorkman}

	workmanID := bound.ID
	request := buildRequest(13, owner.ID, &workmanID)
	workOrder := models.WorkOrder{WorkmanID: bound.ID}

	assert.True(t, CanUpdateWorkOrder(bound, workOrder, request), "bound workman can update")
	assert.False(t, CanUpdateWorkOrder(otherWorkman, workOrder, request), "other workman cannot update")
	assert.True(t, CanUpdateWorkOrder(owner, workOrder, request), "owning landlord can override")
	assert.False(t, CanUpdateWorkOrder(otherLandlord, workOrder, request))
	assert.True(t, CanUpdateWorkOrder(admin, workOrder, request))
}

func TestCanViewRequest(t *testing.T) {
	owner := models.User{ID: 10, Role: models.RoleLandlord}
	otherLandlord := models.User{ID: 11, Role: models.RoleLandlord}
	admin := models.User{ID: 12, Role: models.RoleAdmin}
	creator := models.User{ID: 13, Role: models.RoleTenant}
	otherTenant := models.User{ID: 16, Role: models.RoleTenant}
	assigned := models.User{ID: 14, Role: models.RoleWorkman}
	otherWorkman := models.User{ID: 15, Role: models.RoleWorkman}

	workmanID := assigned.ID
	request := buildRequest(creator.ID, owner.ID, &workmanID)

	assert.True(t, CanViewRequest(creator, request))
	assert.False(t, CanViewRequest(otherTenant, request))
	assert.True(t, CanViewRequest(assigned, request))
	assert.False(t, CanViewRequest(otherWorkman, request))
	assert.True(t, CanViewRequest(owner, request))
	assert.False(t, CanViewRequest(otherLandlord, request))
	assert.True(t, CanViewRequest(admin, request))
}

// TestScopeVisibleRequests verifies the list scope agrees with the
// per-row CanViewRequest decision for every role.
func TestScopeVisibleRequests(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Property{}, &models.Unit{},
		&models.MaintenanceRequest{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	landlord1 := models.User{Auth0ID: "auth0|l1", Name: "L1", Email: "l1@example.com", Role: models.RoleLandlord}
	landlord2 := models.User{Auth0ID: "auth0|l2", Name: "L2", Email: "l2@example.com", Role: models.RoleLandlord}
	tenant1 := models.User{Auth0ID: "auth0|t1", Name: "T1", Email: "t1@example.com", Role: models.RoleTenant}
	tenant2 := models.User{Auth0ID: "auth0|t2", Name: "T2", Email: "t2@example.com", Role: models.RoleTenant}
	workman := models.User{Auth0ID: "auth0|w1", Name: "W1", Email: "w1@example.com", Role: models.RoleWorkman}
	admin := models.User{Auth0ID: "auth0|a1", Name: "A1", Email: "a1@example.com", Role: models.RoleAdmin}
	for _, u := range []*models.User{&landlord1, &landlord2, &tenant1, &tenant2, &workman, &admin} {
		db.Create(u)
	}

	prop1 := models.Property{LandlordID: landlord1.ID, Name: "Harbor House", Address: "1 Pier Rd"}
	prop2 := models.Property{LandlordID: landlord2.ID, Name: "Bay View", Address: "2 Shore Ln"}
	db.Create(&prop1)
	db.Create(&prop2)

	unit1 := models.Unit{PropertyID: prop1.ID, UnitNumber: "1A"}
	unit2 := models.Unit{PropertyID: prop2.ID, UnitNumber: "2B"}
	db.Create(&unit1)
	db.Create(&unit2)

	// tenant1 files two requests in prop1 (one assigned to workman),
	// tenant2 files one in prop2
	req1 := models.MaintenanceRequest{UnitID: unit1.ID, TenantID: tenant1.ID, Title: "Leak", Description: "d", Status: models.RequestStatusPending}
	req2 := models.MaintenanceRequest{UnitID: unit1.ID, TenantID: tenant1.ID, Title: "Heater", Description: "d", Status: models.RequestStatusAssigned, WorkmanID: &workman.ID}
	req3 := models.MaintenanceRequest{UnitID: unit2.ID, TenantID: tenant2.ID, Title: "Window", Description: "d", Status: models.RequestStatusPending}
	db.Create(&req1)
	db.Create(&req2)
	db.Create(&req3)

	countFor := func(actor models.User) int64 {
		var count int64
		err := db.Model(&models.MaintenanceRequest{}).
			Scopes(ScopeVisibleRequests(actor)).
			Count(&count).Error
		assert.NoError(t, err)
		return count
	}

	assert.Equal(t, int64(2), countFor(tenant1))
	assert.Equal(t, int64(1), countFor(tenant2))
	assert.Equal(t, int64(1), countFor(workman))
	assert.Equal(t, int64(2), countFor(landlord1))
	assert.Equal(t, int64(1), countFor(landlord2))
	assert.Equal(t, int64(3), countFor(admin), "only admin sees everything")
}

package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/harborview/harborview-rentals-api/config"
	"github.com/harborview/harborview-rentals-api/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedLease(t *testing.T, db *gorm.DB, f requestFixtures, active bool) models.Lease {
	lease := models.Lease{
		UnitID:      f.unit.ID,
		TenantID:    f.tenant.ID,
		StartDate:   time.Now().AddDate(0, -6, 0),
		EndDate:     time.Now().AddDate(0, 6, 0),
		MonthlyRent: 1500,
		Active:      active,
	}
	if err := db.Create(&lease).Error; err != nil {
		t.Fatalf("Failed to seed lease: %v", err)
	}
	return lease
}

func TestCreateLease(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	f := seedRequestFixtures(t, db)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	validBody := func(unitID, tenantID uint) map[string]interface{} {
		return map[string]interface{}{
			"unit_id":      unitID,
			"tenant_id":    tenantID,
			"start_date":   start.Format(time.RFC3339),
			"end_date":     end.Format(time.RFC3339),
			"monthly_rent": 1500.0,
		}
	}

	tests := []struct {
		name           string
		actor          models.User
		body           map[string]interface{}
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Owning landlord creates lease",
			actor:          f.landlord,
			body:           validBody(f.unit.ID, f.tenant.ID),
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Admin creates lease",
			actor:          f.admin,
			body:           validBody(f.unit.ID, f.otherTenant.ID),
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Non-owning landlord forbidden",
			actor:          f.otherLandlord,
			body:           validBody(f.unit.ID, f.tenant.ID),
			expectedStatus: http.StatusForbidden,
			expectedCode:   "FORBIDDEN",
		},
		{
			name:           "Tenant cannot create lease",
			actor:          f.tenant,
			body:           validBody(f.unit.ID, f.tenant.ID),
			expectedStatus: http.StatusForbidden,
			expectedCode:   "FORBIDDEN",
		},
		{
			name:           "Target must be a tenant",
			actor:          f.landlord,
			body:           validBody(f.unit.ID, f.workman.ID),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_ARGUMENT",
		},
		{
			name:           "Unknown unit returns not found",
			actor:          f.landlord,
			body:           validBody(9999, f.tenant.ID),
			expectedStatus: http.StatusNotFound,
			expectedCode:   "UNIT_NOT_FOUND",
		},
		{
			name:  "End date must follow start date",
			actor: f.landlord,
			body: map[string]interface{}{
				"unit_id":      f.unit.ID,
				"tenant_id":    f.tenant.ID,
				"start_date":   end.Format(time.RFC3339),
				"end_date":     start.Format(time.RFC3339),
				"monthly_rent": 1500.0,
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/leases",
				mockAuthMiddleware(tt.actor.Auth0ID, string(tt.actor.Role), "mock-token"),
				CreateLease,
			)

			w := performJSON(router, http.MethodPost, "/leases", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, w))
			} else {
				response := decodeResponse(t, w)
				data := response["data"].(map[string]interface{})
				assert.Equal(t, true, data["active"])
				assert.Equal(t, float64(f.unit.ID), data["unit_id"])
			}
		})
	}
}

func TestListLeases(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	f := seedRequestFixtures(t, db)

	seedLease(t, db, f, true)

	otherLease := models.Lease{
		UnitID:      f.otherUnit.ID,
		TenantID:    f.otherTenant.ID,
		StartDate:   time.Now().AddDate(0, -3, 0),
		EndDate:     time.Now().AddDate(0, 9, 0),
		MonthlyRent: 1100,
		Active:      true,
	}
	if err := db.Create(&otherLease).Error; err != nil {
		t.Fatalf("Failed to seed lease: %v", err)
	}

	tests := []struct {
		name           string
		actor          models.User
		expectedStatus int
		expectedCount  int
	}{
		{name: "Tenant sees own leases", actor: f.tenant, expectedStatus: http.StatusOK, expectedCount: 1},
		{name: "Landlord sees leases in own properties", actor: f.landlord, expectedStatus: http.StatusOK, expectedCount: 1},
		{name: "Admin sees all leases", actor: f.admin, expectedStatus: http.StatusOK, expectedCount: 2},
		{name: "Workman cannot list leases", actor: f.workman, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.GET("/leases",
				mockAuthMiddleware(tt.actor.Auth0ID, string(tt.actor.Role), "mock-token"),
				ListLeases,
			)

			w := performJSON(router, http.MethodGet, "/leases", nil)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				response := decodeResponse(t, w)
				data := response["data"].([]interface{})
				assert.Len(t, data, tt.expectedCount)
			}
		})
	}
}

package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/harborview/harborview-rentals-api/config"
	"github.com/harborview/harborview-rentals-api/models"
	"github.com/stretchr/testify/assert"
)

func TestCreatePayment(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	f := seedRequestFixtures(t, db)

	activeLease := seedLease(t, db, f, true)
	inactiveLease := seedLease(t, db, f, false)

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
		body           map[string]interface{}
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Tenant pays rent on own active lease",
			actor:          f.tenant,
			body:           map[string]interface{}{"lease_id": activeLease.ID, "amount": 1500.0},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Custom payment method recorded",
			actor:          f.tenant,
			body:           map[string]interface{}{"lease_id": activeLease.ID, "amount": 1500.0, "method": "bank_transfer"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Cannot pay on another tenant's lease",
			actor:          f.tenant,
			body:           map[string]interface{}{"lease_id": otherLease.ID, "amount": 1100.0},
			expectedStatus: http.StatusForbidden,
			expectedCode:   "FORBIDDEN",
		},
		{
			name:           "Cannot pay on inactive lease",
			actor:          f.tenant,
			body:           map[string]interface{}{"lease_id": inactiveLease.ID, "amount": 1500.0},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_STATE",
		},
		{
			name:           "Landlord cannot record payments",
			actor:          f.landlord,
			body:           map[string]interface{}{"lease_id": activeLease.ID, "amount": 1500.0},
			expectedStatus: http.StatusForbidden,
			expectedCode:   "FORBIDDEN",
		},
		{
			name:           "Unknown lease returns not found",
			actor:          f.tenant,
			body:           map[string]interface{}{"lease_id": uint(9999), "amount": 1500.0},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "LEASE_NOT_FOUND",
		},
		{
			name:           "Zero amount rejected",
			actor:          f.tenant,
			body:           map[string]interface{}{"lease_id": activeLease.ID, "amount": 0},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/payments",
				mockAuthMiddleware(tt.actor.Auth0ID, string(tt.actor.Role), "mock-token"),
				CreatePayment,
			)

			w := performJSON(router, http.MethodPost, "/payments", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, w))
			} else {
				response := decodeResponse(t, w)
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "completed", data["status"])
				if tt.body["method"] != nil {
					assert.Equal(t, tt.body["method"], data["method"])
				} else {
					assert.Equal(t, "card", data["method"])
				}
			}
		})
	}
}

func TestListPayments(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	f := seedRequestFixtures(t, db)

	lease := seedLease(t, db, f, true)
	for i := 0; i < 2; i++ {
		payment := models.Payment{
			LeaseID:     lease.ID,
			TenantID:    f.tenant.ID,
			Amount:      1500,
			PaymentDate: time.Now().AddDate(0, -i, 0),
			Method:      "card",
			Status:      "completed",
		}
		if err := db.Create(&payment).Error; err != nil {
			t.Fatalf("Failed to seed payment: %v", err)
		}
	}

	tests := []struct {
		name           string
		actor          models.User
		expectedStatus int
		expectedCount  int
	}{
		{name: "Tenant sees own payments", actor: f.tenant, expectedStatus: http.StatusOK, expectedCount: 2},
		{name: "Landlord sees payments in own properties", actor: f.landlord, expectedStatus: http.StatusOK, expectedCount: 2},
		{name: "Other landlord sees nothing", actor: f.otherLandlord, expectedStatus: http.StatusOK, expectedCount: 0},
		{name: "Admin sees all payments", actor: f.admin, expectedStatus: http.StatusOK, expectedCount: 2},
		{name: "Workman cannot list payments", actor: f.workman, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.GET("/payments",
				mockAuthMiddleware(tt.actor.Auth0ID, string(tt.actor.Role), "mock-token"),
				ListPayments,
			)

			w := performJSON(router, http.MethodGet, "/payments", nil)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				response := decodeResponse(t, w)
				data := response["data"].([]interface{})
				assert.Len(t, data, tt.expectedCount)
			}
		})
	}
}

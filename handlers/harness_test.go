package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"parcel-delivery-api/config"
	"parcel-delivery-api/handlers"
	"parcel-delivery-api/middleware"
	"parcel-delivery-api/models"
	"parcel-delivery-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeGateway stands in for Stripe in tests
type fakeGateway struct {
	fail bool
}

func (g fakeGateway) CreateIntent(amount int64) (string, error) {
	if g.fail {
		return "", errors.New("gateway unreachable")
	}
	return "cs_test_secret", nil
}

// setupRouter wires the production routes onto a fresh in-memory database.
// A single connection keeps every query on the same :memory: instance.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Rider{},
		&models.Parcel{},
		&models.Payment{},
		&models.TrackingEvent{},
	))

	config.DB = db
	handlers.Gateway = fakeGateway{}

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func seedUser(t *testing.T, email string, role models.UserRole) models.User {
	t.Helper()
	user := models.User{Email: email, Name: "Test " + string(role), Role: role}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}

func seedRider(t *testing.T, email, district string, status models.RiderStatus) models.Rider {
	t.Helper()
	rider := models.Rider{
		Name:       "Rider " + email,
		Email:      email,
		District:   district,
		Status:     status,
		WorkStatus: models.WorkIdle,
	}
	require.NoError(t, config.DB.Create(&rider).Error)
	return rider
}

func seedParcel(t *testing.T, createdBy string, mutate ...func(*models.Parcel)) models.Parcel {
	t.Helper()
	parcel := models.Parcel{
		Title:          "Test parcel",
		Cost:           500,
		SenderName:     "Sender",
		ReceiverName:   "Receiver",
		PaymentStatus:  models.PaymentUnpaid,
		DeliveryStatus: models.StatusPending,
		CashoutStatus:  models.CashoutNotCashed,
		CreatedBy:      createdBy,
		TrackingID:     "TRK-test",
	}
	for _, m := range mutate {
		m(&parcel)
	}
	require.NoError(t, config.DB.Create(&parcel).Error)
	return parcel
}

func tokenFor(t *testing.T, email string) string {
	t.Helper()
	token, err := middleware.GenerateToken(email, "Test User")
	require.NoError(t, err)
	return token
}

func reloadParcel(t *testing.T, id uint) models.Parcel {
	t.Helper()
	var parcel models.Parcel
	require.NoError(t, config.DB.First(&parcel, id).Error)
	return parcel
}

package handlers_test

import (
	"net/http"
	"testing"

	"parcel-delivery-api/config"
	"parcel-delivery-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_UpsertByEmail(t *testing.T) {
	r := setupRouter(t)

	body := map[string]interface{}{
		"email": "new@example.com",
		"name":  "New User",
	}

	t.Run("first contact creates the user", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/users", "", body)
		require.Equal(t, http.StatusCreated, w.Code)

		var user models.User
		require.NoError(t, config.DB.Where("email = ?", "new@example.com").First(&user).Error)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.Nil(t, user.LastLogin)
	})

	t.Run("second contact only refreshes last_login", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/users", "", body)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody(t, w)
		assert.Equal(t, false, resp["inserted"])

		var count int64
		config.DB.Model(&models.User{}).Where("email = ?", "new@example.com").Count(&count)
		assert.EqualValues(t, 1, count)

		var user models.User
		require.NoError(t, config.DB.Where("email = ?", "new@example.com").First(&user).Error)
		assert.NotNil(t, user.LastLogin)
	})
}

func TestGetUserRole(t *testing.T) {
	r := setupRouter(t)
	seedUser(t, "known@example.com", models.RoleRider)

	t.Run("known user", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/users/known@example.com/role", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody(t, w)
		assert.Equal(t, "rider", resp["role"])
	})

	t.Run("unknown user", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/users/ghost@example.com/role", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSearchUsers(t *testing.T) {
	r := setupRouter(t)
	seedUser(t, "alice@example.com", models.RoleUser)
	seedUser(t, "ALISON@example.com", models.RoleUser)
	seedUser(t, "bob@example.com", models.RoleUser)

	t.Run("case-insensitive substring match", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/users/search?email=ali", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody(t, w)
		assert.EqualValues(t, 2, resp["count"])
	})

	t.Run("results are capped at 10", func(t *testing.T) {
		for i := 0; i < 12; i++ {
			seedUser(t, "bulk"+string(rune('a'+i))+"@example.com", models.RoleUser)
		}
		w := doJSON(t, r, http.MethodGet, "/api/users/search?email=bulk", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody(t, w)
		assert.EqualValues(t, 10, resp["count"])
	})
}

func TestUpdateUserRole(t *testing.T) {
	r := setupRouter(t)
	seedUser(t, "admin@example.com", models.RoleAdmin)
	target := seedUser(t, "target@example.com", models.RoleUser)

	t.Run("non-admin is forbidden regardless of payload", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/users/2/role",
			tokenFor(t, "target@example.com"), map[string]interface{}{"role": "admin"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown caller is forbidden, not distinguished", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/users/2/role",
			tokenFor(t, "nobody@example.com"), map[string]interface{}{"role": "admin"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin sets the role", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/users/2/role",
			tokenFor(t, "admin@example.com"), map[string]interface{}{"role": "admin"})
		require.Equal(t, http.StatusOK, w.Code)

		var user models.User
		require.NoError(t, config.DB.First(&user, target.ID).Error)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})

	t.Run("made-up role is rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/users/2/role",
			tokenFor(t, "admin@example.com"), map[string]interface{}{"role": "superuser"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateUserProfile(t *testing.T) {
	r := setupRouter(t)
	user := seedUser(t, "me@example.com", models.RoleUser)

	t.Run("requires authentication", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/users/1/profile", "",
			map[string]interface{}{"phone": "123"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("updates profile fields", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/users/1/profile",
			tokenFor(t, "me@example.com"),
			map[string]interface{}{"phone": "01700000000", "address": "Dhaka"})
		require.Equal(t, http.StatusOK, w.Code)

		var got models.User
		require.NoError(t, config.DB.First(&got, user.ID).Error)
		assert.Equal(t, "01700000000", got.Phone)
		assert.Equal(t, "Dhaka", got.Address)
		assert.Equal(t, user.Email, got.Email)
	})
}

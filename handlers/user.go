package handlers

import (
	"net/http"
	"strings"
	"time"

	"parcel-delivery-api/config"
	"parcel-delivery-api/models"

	"github.com/gin-gonic/gin"
)

type CreateUserRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// CreateUser upserts a user by email. First authenticated contact creates
// the record; every later call only refreshes last_login.
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		now := time.Now()
		config.DB.Model(&existing).Update("last_login", &now)
		c.JSON(http.StatusOK, gin.H{"message": "User already exists", "inserted": false})
		return
	}

	user := models.User{
		Email:   req.Email,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Role:    models.RoleUser,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"inserted": true, "user": user})
}

// GetUserRole returns the stored role for an email
func GetUserRole(c *gin.Context) {
	email := c.Param("email")
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": user.Role})
}

// SearchUsers finds users by case-insensitive email substring, capped at 10
func SearchUsers(c *gin.Context) {
	email := strings.ToLower(c.Query("email"))
	var users []models.User
	config.DB.Where("LOWER(email) LIKE ?", "%"+email+"%").
		Limit(10).
		Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

type UpdateRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required"`
}

// UpdateUserRole sets a user's role — admin only
func UpdateUserRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	validRoles := map[models.UserRole]bool{
		models.RoleUser:  true,
		models.RoleAdmin: true,
		models.RoleRider: true,
	}
	if !validRoles[req.Role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: user, admin, or rider"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	config.DB.Model(&user).Update("role", req.Role)
	c.JSON(http.StatusOK, gin.H{"message": "User role updated successfully", "user_id": user.ID, "role": req.Role})
}

type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// UpdateUserProfile lets an authenticated caller edit profile fields
func UpdateUserProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if len(updates) > 0 {
		config.DB.Model(&user).Updates(updates)
		config.DB.First(&user, user.ID)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

package handlers

import (
	"net/http"

	"parcel-delivery-api/config"
	"parcel-delivery-api/models"

	"github.com/gin-gonic/gin"
)

type CreateRiderRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Age              string `json:"age"`
	Phone            string `json:"phone"`
	Region           string `json:"region"`
	District         string `json:"district" binding:"required"`
	NID              string `json:"nid"`
	BikeBrand        string `json:"bike_brand"`
	BikeRegistration string `json:"bike_registration"`
}

// CreateRider submits a rider application, starting in pending
func CreateRider(c *gin.Context) {
	var req CreateRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rider := models.Rider{
		Name:             req.Name,
		Email:            req.Email,
		Age:              req.Age,
		Phone:            req.Phone,
		Region:           req.Region,
		District:         req.District,
		NID:              req.NID,
		BikeBrand:        req.BikeBrand,
		BikeRegistration: req.BikeRegistration,
		Status:           models.RiderPending,
		WorkStatus:       models.WorkIdle,
	}
	if err := config.DB.Create(&rider).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rider"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Rider application submitted successfully",
		"rider":   rider,
	})
}

// GetPendingRiders lists applications awaiting approval — admin only
func GetPendingRiders(c *gin.Context) {
	var riders []models.Rider
	config.DB.Where("status = ?", models.RiderPending).
		Order("created_at desc").
		Find(&riders)
	c.JSON(http.StatusOK, gin.H{"count": len(riders), "riders": riders})
}

// GetApprovedRiders lists active riders — admin only
func GetApprovedRiders(c *gin.Context) {
	var riders []models.Rider
	config.DB.Where("status = ?", models.RiderApproved).
		Order("created_at desc").
		Find(&riders)
	c.JSON(http.StatusOK, gin.H{"count": len(riders), "riders": riders})
}

// GetAvailableRiders lists approved riders in a district, for dispatch
func GetAvailableRiders(c *gin.Context) {
	district := c.Query("district")
	if district == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "District is required"})
		return
	}

	var riders []models.Rider
	config.DB.Where("district = ? AND status = ?", district, models.RiderApproved).
		Find(&riders)
	c.JSON(http.StatusOK, gin.H{"count": len(riders), "riders": riders})
}

type UpdateRiderStatusRequest struct {
	Status models.RiderStatus `json:"status" binding:"required"`
	Email  string             `json:"email"`
}

// UpdateRiderStatus approves or rejects an application — admin only.
// Approval promotes the matching user's role to rider by email. The
// promotion is best-effort: the user may not have logged in yet, and
// repeating it is a no-op.
func UpdateRiderStatus(c *gin.Context) {
	var req UpdateRiderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status != models.RiderPending && req.Status != models.RiderApproved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be: pending or approved"})
		return
	}

	var rider models.Rider
	if err := config.DB.First(&rider, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rider not found"})
		return
	}

	config.DB.Model(&rider).Update("status", req.Status)

	if req.Status == models.RiderApproved && req.Email != "" {
		config.DB.Model(&models.User{}).
			Where("email = ?", req.Email).
			Update("role", models.RoleRider)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rider status updated successfully",
		"rider":   rider,
	})
}

package handlers

import (
	"net/http"
	"time"

	"parcel-delivery-api/config"
	"parcel-delivery-api/middleware"
	"parcel-delivery-api/models"

	"github.com/gin-gonic/gin"
)

type AddTrackingRequest struct {
	TrackingID string `json:"tracking_id" binding:"required"`
	ParcelID   *uint  `json:"parcel_id"`
	Status     string `json:"status" binding:"required"`
	Message    string `json:"message"`
	UpdatedBy  string `json:"updated_by"`
}

// AddTrackingEvent appends a log line to a parcel's tracking feed
func AddTrackingEvent(c *gin.Context) {
	var req AddTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updatedBy := req.UpdatedBy
	if updatedBy == "" {
		updatedBy = middleware.GetEmail(c)
	}

	event := models.TrackingEvent{
		TrackingID: req.TrackingID,
		ParcelID:   req.ParcelID,
		Status:     req.Status,
		Message:    req.Message,
		UpdatedBy:  updatedBy,
		Time:       time.Now(),
	}
	if err := config.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add tracking event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "event": event})
}

// GetParcelTrackings returns a parcel's tracking feed, oldest first
func GetParcelTrackings(c *gin.Context) {
	var parcel models.Parcel
	if err := config.DB.First(&parcel, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parcel not found"})
		return
	}

	var events []models.TrackingEvent
	config.DB.Where("parcel_id = ? OR tracking_id = ?", parcel.ID, parcel.TrackingID).
		Order("time asc, id asc").
		Find(&events)
	c.JSON(http.StatusOK, gin.H{"count": len(events), "trackings": events})
}

package handlers

import (
	"net/http"
	"time"

	"parcel-delivery-api/config"
	"parcel-delivery-api/lifecycle"
	"parcel-delivery-api/middleware"
	"parcel-delivery-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateParcelRequest struct {
	Type  string  `json:"type"`
	Title string  `json:"title" binding:"required"`
	Cost  float64 `json:"cost" binding:"required,min=0"`

	SenderName        string `json:"sender_name" binding:"required"`
	SenderContact     string `json:"sender_contact"`
	SenderRegion      string `json:"sender_region"`
	SenderCenter      string `json:"sender_center"`
	SenderAddress     string `json:"sender_address"`
	PickupInstruction string `json:"pickup_instruction"`

	ReceiverName        string `json:"receiver_name" binding:"required"`
	ReceiverContact     string `json:"receiver_contact"`
	ReceiverRegion      string `json:"receiver_region"`
	ReceiverCenter      string `json:"receiver_center"`
	ReceiverAddress     string `json:"receiver_address"`
	DeliveryInstruction string `json:"delivery_instruction"`
}

// CreateParcel books a new parcel for the authenticated caller
func CreateParcel(c *gin.Context) {
	var req CreateParcelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parcel := models.Parcel{
		Type:  req.Type,
		Title: req.Title,
		Cost:  req.Cost,

		SenderName:        req.SenderName,
		SenderContact:     req.SenderContact,
		SenderRegion:      req.SenderRegion,
		SenderCenter:      req.SenderCenter,
		SenderAddress:     req.SenderAddress,
		PickupInstruction: req.PickupInstruction,

		ReceiverName:        req.ReceiverName,
		ReceiverContact:     req.ReceiverContact,
		ReceiverRegion:      req.ReceiverRegion,
		ReceiverCenter:      req.ReceiverCenter,
		ReceiverAddress:     req.ReceiverAddress,
		DeliveryInstruction: req.DeliveryInstruction,

		PaymentStatus:  models.PaymentUnpaid,
		DeliveryStatus: models.StatusPending,
		CashoutStatus:  models.CashoutNotCashed,
		CreatedBy:      middleware.GetEmail(c),
		TrackingID:     "TRK-" + uuid.NewString(),
	}

	if err := config.DB.Create(&parcel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create parcel"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Parcel created successfully",
		"parcel":  parcel,
	})
}

// ParcelFilter names the optional predicates a parcel listing supports
type ParcelFilter struct {
	CreatedBy      string
	PaymentStatus  models.PaymentStatus
	DeliveryStatus models.DeliveryStatus
}

func (f ParcelFilter) apply(db *gorm.DB) *gorm.DB {
	if f.CreatedBy != "" {
		db = db.Where("created_by = ?", f.CreatedBy)
	}
	if f.PaymentStatus != "" {
		db = db.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.DeliveryStatus != "" {
		db = db.Where("delivery_status = ?", f.DeliveryStatus)
	}
	return db
}

// GetParcels lists parcels newest-first with optional filters
func GetParcels(c *gin.Context) {
	filter := ParcelFilter{
		CreatedBy:      c.Query("email"),
		PaymentStatus:  models.PaymentStatus(c.Query("payment_status")),
		DeliveryStatus: models.DeliveryStatus(c.Query("delivery_status")),
	}

	var parcels []models.Parcel
	filter.apply(config.DB).
		Order("created_at desc").
		Find(&parcels)
	c.JSON(http.StatusOK, gin.H{"count": len(parcels), "parcels": parcels})
}

// GetParcelByID fetches a single parcel
func GetParcelByID(c *gin.Context) {
	var parcel models.Parcel
	if err := config.DB.First(&parcel, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parcel not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"parcel": parcel})
}

type AssignRiderRequest struct {
	RiderID uint `json:"riderId" binding:"required"`
}

// AssignRider hands a pending parcel to a rider — admin only. The parcel
// and rider writes are two sequential updates with no transaction; if the
// rider write fails the response says so distinctly instead of rolling back.
func AssignRider(c *gin.Context) {
	var req AssignRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var parcel models.Parcel
	if err := config.DB.First(&parcel, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parcel not found"})
		return
	}

	var rider models.Rider
	if err := config.DB.First(&rider, req.RiderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rider not found"})
		return
	}

	if err := lifecycle.CanTransition(parcel.DeliveryStatus, models.StatusRiderAssigned, lifecycle.ActorAdmin); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    parcel.DeliveryStatus,
			"reason":            err.Error(),
			"valid_next_states": lifecycle.ValidTransitionsFrom(parcel.DeliveryStatus),
		})
		return
	}

	// The three assigned_rider fields move together, never partially
	if err := config.DB.Model(&parcel).Updates(map[string]interface{}{
		"delivery_status":      models.StatusRiderAssigned,
		"assigned_rider_id":    rider.ID,
		"assigned_rider_name":  rider.Name,
		"assigned_rider_email": rider.Email,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign parcel"})
		return
	}

	config.DB.First(&parcel, parcel.ID)

	riderErr := config.DB.Model(&rider).Update("work_status", models.WorkInDelivery).Error
	if riderErr != nil {
		c.JSON(http.StatusOK, gin.H{
			"message":             "Parcel assigned, but rider work status update failed",
			"rider_update_failed": true,
			"parcel":              parcel,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Parcel assigned to rider successfully",
		"parcel":  parcel,
	})
}

type UpdateParcelStatusRequest struct {
	DeliveryStatus models.DeliveryStatus `json:"delivery_status" binding:"required"`
}

// UpdateParcelStatus advances delivery status — rider only, ownership
// checked. A parcel assigned to someone else looks exactly like a missing
// parcel to the caller.
func UpdateParcelStatus(c *gin.Context) {
	riderEmail := middleware.GetEmail(c)

	var req UpdateParcelStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var parcel models.Parcel
	if err := config.DB.
		Where("id = ? AND assigned_rider_email = ?", c.Param("id"), riderEmail).
		First(&parcel).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parcel not found or rider mismatch"})
		return
	}

	if err := lifecycle.CanTransition(parcel.DeliveryStatus, req.DeliveryStatus, lifecycle.ActorRider); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    parcel.DeliveryStatus,
			"reason":            err.Error(),
			"valid_next_states": lifecycle.ValidTransitionsFrom(parcel.DeliveryStatus),
		})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{"delivery_status": req.DeliveryStatus}
	switch req.DeliveryStatus {
	case models.StatusInTransit:
		if parcel.PickedAt == nil {
			updates["picked_at"] = &now
		}
	case models.StatusDelivered:
		if parcel.DeliveredAt == nil {
			updates["delivered_at"] = &now
		}
	}

	config.DB.Model(&parcel).Updates(updates)
	config.DB.First(&parcel, parcel.ID)

	// Completed delivery frees the rider for the next assignment
	if req.DeliveryStatus == models.StatusDelivered || req.DeliveryStatus == models.StatusServiceCenterDelivered {
		config.DB.Model(&models.Rider{}).
			Where("email = ?", riderEmail).
			Update("work_status", models.WorkIdle)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Parcel status updated successfully",
		"parcel":  parcel,
	})
}

// CashoutParcel reconciles collected cash for a parcel — admin only.
// Requires the parcel to be paid; repeating a cashout is rejected so
// cashed_out_at is never overwritten.
func CashoutParcel(c *gin.Context) {
	var parcel models.Parcel
	if err := config.DB.First(&parcel, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parcel not found"})
		return
	}

	if parcel.CashoutStatus == models.CashoutCashedOut {
		c.JSON(http.StatusConflict, gin.H{"error": "Parcel is already cashed out"})
		return
	}
	if err := lifecycle.CanCashout(&parcel); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	config.DB.Model(&parcel).Updates(map[string]interface{}{
		"cashout_status": models.CashoutCashedOut,
		"cashed_out_at":  &now,
	})
	config.DB.First(&parcel, parcel.ID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Parcel cashed out successfully",
		"parcel":  parcel,
	})
}

// DeleteParcel hard-deletes a parcel — admin only. Payment ledger entries
// referencing it are left untouched.
func DeleteParcel(c *gin.Context) {
	var parcel models.Parcel
	if err := config.DB.First(&parcel, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parcel not found"})
		return
	}

	config.DB.Delete(&parcel)
	c.JSON(http.StatusOK, gin.H{
		"message":   "Parcel deleted successfully",
		"parcel_id": parcel.ID,
	})
}

// GetRiderPendingParcels returns the caller's active workload, oldest first
func GetRiderPendingParcels(c *gin.Context) {
	riderEmail := middleware.GetEmail(c)

	var parcels []models.Parcel
	config.DB.
		Where("assigned_rider_email = ? AND delivery_status IN ?",
			riderEmail, []models.DeliveryStatus{models.StatusRiderAssigned, models.StatusInTransit}).
		Order("created_at asc").
		Find(&parcels)
	c.JSON(http.StatusOK, gin.H{"count": len(parcels), "parcels": parcels})
}

// GetRiderCompletedParcels returns the caller's finished deliveries
func GetRiderCompletedParcels(c *gin.Context) {
	riderEmail := middleware.GetEmail(c)

	var parcels []models.Parcel
	config.DB.
		Where("assigned_rider_email = ? AND delivery_status IN ?",
			riderEmail, []models.DeliveryStatus{models.StatusDelivered, models.StatusServiceCenterDelivered}).
		Order("created_at desc").
		Find(&parcels)
	c.JSON(http.StatusOK, gin.H{"count": len(parcels), "parcels": parcels})
}

// GetStateMachineInfo returns the full delivery state machine for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range lifecycle.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.DeliveryStatus{models.StatusDelivered, models.StatusServiceCenterDelivered},
		"description":     "Parcel Delivery Lifecycle State Machine",
	})
}

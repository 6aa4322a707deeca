package handlers

import (
	"net/http"
	"time"

	"parcel-delivery-api/config"
	"parcel-delivery-api/gateway"
	"parcel-delivery-api/lifecycle"
	"parcel-delivery-api/middleware"
	"parcel-delivery-api/models"

	"github.com/gin-gonic/gin"
)

// Gateway is the payment-gateway capability; swapped for a fake in tests
var Gateway gateway.PaymentGateway

// GetUserPayments lists the caller's own payments, newest first.
// The queried email must match the verified identity — no cross-user reads.
func GetUserPayments(c *gin.Context) {
	email := c.Query("email")
	if middleware.GetEmail(c) != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var payments []models.Payment
	config.DB.Where("email = ?", email).
		Order("paid_at desc").
		Find(&payments)
	c.JSON(http.StatusOK, gin.H{"count": len(payments), "payments": payments})
}

// GetAllPayments lists every payment — admin only
func GetAllPayments(c *gin.Context) {
	var payments []models.Payment
	config.DB.Order("paid_at desc").Find(&payments)
	c.JSON(http.StatusOK, gin.H{"count": len(payments), "payments": payments})
}

type RecordPaymentRequest struct {
	ParcelID      uint    `json:"parcelId" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Amount        float64 `json:"amount" binding:"required"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	TransactionID string  `json:"transactionId" binding:"required"`
}

// RecordPayment marks a parcel paid and appends a ledger entry. A parcel
// that is already paid is rejected — one paid transition per parcel.
func RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var parcel models.Parcel
	if err := config.DB.First(&parcel, req.ParcelID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parcel not found"})
		return
	}

	if err := lifecycle.CanRecordPayment(&parcel); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Model(&parcel).Update("payment_status", models.PaymentPaid).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update parcel"})
		return
	}
	config.DB.First(&parcel, parcel.ID)

	now := time.Now()
	payment := models.Payment{
		ParcelID:      req.ParcelID,
		Email:         req.Email,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		PaidAt:        now,
		PaidAtString:  now.Format(time.RFC3339),
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment recorded and parcel updated",
		"payment": payment,
		"parcel":  parcel,
	})
}

type CreateIntentRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

// CreatePaymentIntent delegates to the payment gateway and hands the
// client secret back to the caller. No local state changes.
func CreatePaymentIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clientSecret, err := Gateway.CreateIntent(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error creating payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

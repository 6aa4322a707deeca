package routes

import (
	"parcel-delivery-api/config"
	"parcel-delivery-api/gateway"
	"parcel-delivery-api/handlers"
	"parcel-delivery-api/middleware"
	"parcel-delivery-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	if handlers.Gateway == nil {
		handlers.Gateway = gateway.NewStripeGateway(config.StripeSecretKey)
	}

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Users: upsert on first contact, role lookup, search
		public.POST("/users", handlers.CreateUser)
		public.GET("/users/search", handlers.SearchUsers)
		public.GET("/users/:email/role", handlers.GetUserRole)

		// Rider applications and dispatch lookup
		public.POST("/riders", handlers.CreateRider)
		public.GET("/riders/available", handlers.GetAvailableRiders)

		// Single parcel fetch + tracking feed
		public.GET("/parcels/:id", handlers.GetParcelByID)
		public.GET("/parcels/:id/trackings", handlers.GetParcelTrackings)

		// Payment intent creation (the gateway does its own auth)
		public.POST("/payments/create-payment-intent", handlers.CreatePaymentIntent)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.PATCH("/users/:id/profile", handlers.UpdateUserProfile)

		auth.GET("/parcels", handlers.GetParcels)
		auth.POST("/parcels", handlers.CreateParcel)

		auth.GET("/payments", handlers.GetUserPayments)
		auth.POST("/payments", handlers.RecordPayment)

		auth.POST("/tracking", handlers.AddTrackingEvent)
	}

	// ── Rider routes ───────────────────────────────────────────────
	rider := r.Group("/api")
	rider.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleRider))
	{
		rider.GET("/parcels/rider", handlers.GetRiderPendingParcels)
		rider.GET("/parcels/rider/completed-parcels", handlers.GetRiderCompletedParcels)
		rider.PATCH("/parcels/:id/status", handlers.UpdateParcelStatus)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.PATCH("/users/:id/role", handlers.UpdateUserRole)

		admin.GET("/riders/pending", handlers.GetPendingRiders)
		admin.GET("/riders/approved", handlers.GetApprovedRiders)
		admin.PATCH("/riders/:id/status", handlers.UpdateRiderStatus)

		admin.PATCH("/parcels/:id/assign", handlers.AssignRider)
		admin.PATCH("/parcels/:id/cashout", handlers.CashoutParcel)
		admin.DELETE("/parcels/:id", handlers.DeleteParcel)

		admin.GET("/payments/admin", handlers.GetAllPayments)
	}
}

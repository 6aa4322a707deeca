package models

import "time"

// DeliveryStatus represents all possible states of a parcel's physical handling
type DeliveryStatus string

const (
	StatusPending                DeliveryStatus = "pending"
	StatusRiderAssigned          DeliveryStatus = "rider_assigned"
	StatusInTransit              DeliveryStatus = "in_transit"
	StatusDelivered              DeliveryStatus = "delivered"
	StatusServiceCenterDelivered DeliveryStatus = "service_center_delivered"
)

// PaymentStatus tracks whether the parcel's cost has been captured
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// CashoutStatus tracks whether collected cash has been reconciled
type CashoutStatus string

const (
	CashoutNotCashed CashoutStatus = "not_cashed"
	CashoutCashedOut CashoutStatus = "cashed_out"
)

type Parcel struct {
	ID    uint    `json:"id" gorm:"primaryKey"`
	Type  string  `json:"type"`
	Title string  `json:"title"`
	Cost  float64 `json:"cost"`

	SenderName        string `json:"sender_name"`
	SenderContact     string `json:"sender_contact"`
	SenderRegion      string `json:"sender_region"`
	SenderCenter      string `json:"sender_center"`
	SenderAddress     string `json:"sender_address"`
	PickupInstruction string `json:"pickup_instruction"`

	ReceiverName        string `json:"receiver_name"`
	ReceiverContact     string `json:"receiver_contact"`
	ReceiverRegion      string `json:"receiver_region"`
	ReceiverCenter      string `json:"receiver_center"`
	ReceiverAddress     string `json:"receiver_address"`
	DeliveryInstruction string `json:"delivery_instruction"`

	PaymentStatus  PaymentStatus  `json:"payment_status" gorm:"not null;default:'unpaid'"`
	DeliveryStatus DeliveryStatus `json:"delivery_status" gorm:"not null;default:'pending'"`
	CashoutStatus  CashoutStatus  `json:"cashout_status" gorm:"not null;default:'not_cashed'"`

	CreatedBy  string `json:"created_by" gorm:"index"`
	TrackingID string `json:"tracking_id" gorm:"index"`

	// Set jointly on assignment, never partially
	AssignedRiderID    *uint  `json:"assigned_rider_id"`
	AssignedRiderName  string `json:"assigned_rider_name"`
	AssignedRiderEmail string `json:"assigned_rider_email" gorm:"index"`

	PickedAt    *time.Time `json:"picked_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
	CashedOutAt *time.Time `json:"cashed_out_at"`

	CreatedAt time.Time `json:"creation_date"`
}

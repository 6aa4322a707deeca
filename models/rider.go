package models

import "time"

// RiderStatus is the lifecycle of a rider application
type RiderStatus string

const (
	RiderPending  RiderStatus = "pending"
	RiderApproved RiderStatus = "approved"
)

// WorkStatus tracks whether a rider currently has an active assignment
type WorkStatus string

const (
	WorkIdle       WorkStatus = "idle"
	WorkInDelivery WorkStatus = "in_delivery"
)

type Rider struct {
	ID               uint        `json:"id" gorm:"primaryKey"`
	Name             string      `json:"name"`
	Email            string      `json:"email" gorm:"index;not null"`
	Age              string      `json:"age"`
	Phone            string      `json:"phone"`
	Region           string      `json:"region"`
	District         string      `json:"district" gorm:"index"`
	NID              string      `json:"nid"`
	BikeBrand        string      `json:"bike_brand"`
	BikeRegistration string      `json:"bike_registration"`
	Status           RiderStatus `json:"status" gorm:"not null;default:'pending'"`
	WorkStatus       WorkStatus  `json:"work_status" gorm:"not null;default:'idle'"`
	CreatedAt        time.Time   `json:"created_at"`
}

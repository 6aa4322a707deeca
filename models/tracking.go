package models

import "time"

// TrackingEvent is an append-only log line on a parcel's journey
type TrackingEvent struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TrackingID string    `json:"tracking_id" gorm:"index"`
	ParcelID   *uint     `json:"parcel_id" gorm:"index"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	UpdatedBy  string    `json:"updated_by"`
	Time       time.Time `json:"time"`
}

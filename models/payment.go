package models

import "time"

// Payment is an immutable ledger entry — never updated or deleted
type Payment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ParcelID      uint      `json:"parcelId" gorm:"index;not null"`
	Email         string    `json:"email" gorm:"index"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	TransactionID string    `json:"transactionId"`
	PaidAt        time.Time `json:"paid_at"`
	PaidAtString  string    `json:"paid_at_string"` // redundant human-readable copy, kept for the frontend
}

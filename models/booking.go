package models

import "time"

// Booking status values.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Booking is the persisted record produced when a session is confirmed.
type Booking struct {
	ID          string `bson:"id" json:"id"`
	UserID      string `bson:"user_id" json:"userId"`
	WorkerID    string `bson:"worker_id,omitempty" json:"workerId,omitempty"`
	ServiceSlug string `bson:"service_slug" json:"serviceSlug"`

	// Screens is the final snapshot of the session's per-screen data.
	Screens map[string]map[string]interface{} `bson:"screens" json:"screens"`

	Pricing       PricingResult `bson:"pricing" json:"pricing"`
	PaymentMethod string        `bson:"payment_method,omitempty" json:"paymentMethod,omitempty"`
	InvoiceID     string        `bson:"invoice_id,omitempty" json:"invoiceId,omitempty"`
	PackageID     string        `bson:"package_id,omitempty" json:"packageId,omitempty"`
	Status        string        `bson:"status" json:"status"`
	CreatedAt     time.Time     `bson:"created_at" json:"createdAt"`
}

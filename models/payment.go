package models

import "time"

// Payment methods accepted at confirmation.
const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
)

// Invoice status values, mirroring the gateway lifecycle.
const (
	InvoicePending    = "pending"
	InvoiceProcessing = "processing"
	InvoicePaid       = "paid"
	InvoiceFailed     = "failed"
	InvoiceRefunded   = "refunded"
)

// PaymentRequest asks the gateway to charge a user.
type PaymentRequest struct {
	UserID          string  `json:"userId"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Method          string  `json:"method"`
	PaymentMethodID string  `json:"paymentMethodId,omitempty"`
	Description     string  `json:"description,omitempty"`
}

// Invoice is the outcome of a charge attempt.
type Invoice struct {
	InvoiceID string    `bson:"invoice_id" json:"invoiceId"`
	PaymentID string    `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	UserID    string    `bson:"user_id" json:"userId"`
	Amount    float64   `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	Method    string    `bson:"method" json:"method"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

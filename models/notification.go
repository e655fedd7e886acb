package models

// Notification targets.
const (
	NotifyTargetUser   = "user"
	NotifyTargetWorker = "worker"
)

// BookingConfirmedPayload is the queued payload for a "booking confirmed"
// event. Delivery itself is an external collaborator's job.
type BookingConfirmedPayload struct {
	Target      string  `json:"target"`
	RecipientID string  `json:"recipientId"`
	BookingID   string  `json:"bookingId"`
	ServiceSlug string  `json:"serviceSlug"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

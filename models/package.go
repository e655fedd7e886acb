package models

import "time"

// PackageStatus is the lifecycle state of a prepaid service package.
type PackageStatus string

const (
	PackageActive    PackageStatus = "active"
	PackageDepleted  PackageStatus = "depleted"
	PackageExpired   PackageStatus = "expired"
	PackageCancelled PackageStatus = "cancelled"
)

// ServicePackage is a prepaid bundle of service sessions. Credits are only
// mutated through the ledger's consume/refund operations; the record is never
// deleted, only transitioned to a terminal status.
type ServicePackage struct {
	ID             string        `bson:"id" json:"id"`
	OwnerID        string        `bson:"owner_id" json:"ownerId"`
	WorkerID       string        `bson:"worker_id,omitempty" json:"workerId,omitempty"`
	ServiceSlug    string        `bson:"service_slug" json:"serviceSlug"`
	Name           string        `bson:"name" json:"name"`
	Type           string        `bson:"type" json:"type"`
	TotalCredits   int           `bson:"total_credits" json:"totalCredits"`
	UsedCredits    int           `bson:"used_credits" json:"usedCredits"`
	PurchaseAmount float64       `bson:"purchase_amount" json:"purchaseAmount"`
	Currency       string        `bson:"currency" json:"currency"`
	Status         PackageStatus `bson:"status" json:"status"`
	PurchasedAt    time.Time     `bson:"purchased_at" json:"purchasedAt"`
	ExpiresAt      *time.Time    `bson:"expires_at,omitempty" json:"expiresAt,omitempty"`
	Notes          string        `bson:"notes,omitempty" json:"notes,omitempty"`
}

// RemainingCredits returns the credits not yet consumed.
func (p *ServicePackage) RemainingCredits() int {
	return p.TotalCredits - p.UsedCredits
}

// CreditValue is the nominal value of one credit, for reporting.
func (p *ServicePackage) CreditValue() float64 {
	if p.TotalCredits == 0 {
		return 0
	}
	return p.PurchaseAmount / float64(p.TotalCredits)
}

// ExpiredAt reports whether the package is past its expiry at the given time.
func (p *ServicePackage) ExpiredAt(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}

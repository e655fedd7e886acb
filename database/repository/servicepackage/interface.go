package packageRepo

import (
	"context"
	"time"

	"zela/models"
)

// Repository defines data access for prepaid service packages.
//
// UpdateCredits is the concurrency-critical operation: it must apply the
// credit change and the status transition in a single atomic write, guarded
// by the expected used-credit count (compare-and-swap). It returns false —
// not an error — when another writer got there first.
type Repository interface {
	Create(ctx context.Context, p *models.ServicePackage) error
	GetByID(ctx context.Context, id string) (*models.ServicePackage, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.ServicePackage, error)
	UpdateCredits(ctx context.Context, id string, expectedUsed, newUsed int, status models.PackageStatus) (bool, error)
	SetStatus(ctx context.Context, id string, from, to models.PackageStatus) (bool, error)
	MarkExpired(ctx context.Context, before time.Time) (int64, error)
}

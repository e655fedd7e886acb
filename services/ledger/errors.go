package ledger

import (
	"fmt"
	"time"

	"zela/models"
)

// InsufficientCreditsError means the consume would overdraw the package.
type InsufficientCreditsError struct {
	PackageID string
	Requested int
	Remaining int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("package %s has %d credit(s) remaining, %d requested",
		e.PackageID, e.Remaining, e.Requested)
}

// PackageExpiredError means the package is past its expiry time.
type PackageExpiredError struct {
	PackageID string
	ExpiredAt time.Time
}

func (e *PackageExpiredError) Error() string {
	return fmt.Sprintf("package %s expired at %s", e.PackageID, e.ExpiredAt.Format(time.RFC3339))
}

// PackageNotActiveError means the package is in a status that cannot be
// consumed from, such as cancelled.
type PackageNotActiveError struct {
	PackageID string
	Status    models.PackageStatus
}

func (e *PackageNotActiveError) Error() string {
	return fmt.Sprintf("package %s is %s", e.PackageID, e.Status)
}

// ConcurrencyConflictError means a concurrent writer changed the package
// between the ledger's read and its compare-and-swap. Callers may retry.
type ConcurrencyConflictError struct {
	PackageID string
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("concurrent update on package %s", e.PackageID)
}

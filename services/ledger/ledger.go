package ledger

import (
	"context"
	"fmt"
	"time"

	packageRepo "zela/database/repository/servicepackage"
	"zela/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreditLedger tracks package purchases and credit consumption.
type CreditLedger interface {
	Purchase(ctx context.Context, input PurchaseInput) (*models.ServicePackage, error)
	Consume(ctx context.Context, packageID string, count int) (*models.ServicePackage, error)
	Refund(ctx context.Context, packageID string, count int) (*models.ServicePackage, error)
	Get(ctx context.Context, packageID string) (*models.ServicePackage, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.ServicePackage, error)
	IsUsable(p *models.ServicePackage) bool
}

// PurchaseInput creates a new active package from a catalog package option.
type PurchaseInput struct {
	OwnerID     string               `json:"ownerId"`
	WorkerID    string               `json:"workerId,omitempty"`
	ServiceSlug string               `json:"serviceSlug"`
	Option      models.PackageOption `json:"option"`
	Currency    string               `json:"currency,omitempty"`
	ExpiresAt   *time.Time           `json:"expiresAt,omitempty"`
}

// DefaultCreditLedger implements CreditLedger over a package repository.
// Each Consume/Refund call makes a single compare-and-swap attempt; a lost
// race surfaces as ConcurrencyConflictError and the caller decides whether
// to retry.
type DefaultCreditLedger struct {
	Repo   packageRepo.Repository
	Logger *zap.Logger

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewDefaultCreditLedger(repo packageRepo.Repository, logger *zap.Logger) *DefaultCreditLedger {
	return &DefaultCreditLedger{Repo: repo, Logger: logger}
}

func (l *DefaultCreditLedger) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *DefaultCreditLedger) Purchase(ctx context.Context, input PurchaseInput) (*models.ServicePackage, error) {
	if input.OwnerID == "" {
		return nil, fmt.Errorf("purchase requires an owner")
	}
	if input.Option.Sessions <= 0 {
		return nil, fmt.Errorf("package option %q has no sessions", input.Option.ID)
	}
	currency := input.Currency
	if currency == "" {
		currency = "AOA"
	}

	p := &models.ServicePackage{
		ID:             uuid.New().String(),
		OwnerID:        input.OwnerID,
		WorkerID:       input.WorkerID,
		ServiceSlug:    input.ServiceSlug,
		Name:           input.Option.Name,
		Type:           input.Option.ID,
		TotalCredits:   input.Option.Sessions,
		UsedCredits:    0,
		PurchaseAmount: input.Option.Price,
		Currency:       currency,
		Status:         models.PackageActive,
		PurchasedAt:    l.now(),
		ExpiresAt:      input.ExpiresAt,
	}
	if err := l.Repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create service package: %w", err)
	}
	if l.Logger != nil {
		l.Logger.Info("package purchased",
			zap.String("packageId", p.ID),
			zap.String("ownerId", p.OwnerID),
			zap.Int("credits", p.TotalCredits))
	}
	return p, nil
}

// Consume uses count credits from a package. The credit increment and any
// transition to depleted land in one atomic write, so the two are never
// observably separate.
func (l *DefaultCreditLedger) Consume(ctx context.Context, packageID string, count int) (*models.ServicePackage, error) {
	if count <= 0 {
		return nil, fmt.Errorf("consume count must be positive, got %d", count)
	}

	p, err := l.Repo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	if err := l.checkUsable(ctx, p); err != nil {
		return nil, err
	}
	if p.UsedCredits+count > p.TotalCredits {
		return nil, &InsufficientCreditsError{
			PackageID: p.ID,
			Requested: count,
			Remaining: p.RemainingCredits(),
		}
	}

	newUsed := p.UsedCredits + count
	newStatus := models.PackageActive
	if newUsed == p.TotalCredits {
		newStatus = models.PackageDepleted
	}

	ok, err := l.Repo.UpdateCredits(ctx, p.ID, p.UsedCredits, newUsed, newStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to consume credits on package %s: %w", p.ID, err)
	}
	if !ok {
		return nil, &ConcurrencyConflictError{PackageID: p.ID}
	}

	p.UsedCredits = newUsed
	p.Status = newStatus
	return p, nil
}

// Refund returns count credits to a package, reviving a depleted package
// when the refund reopens capacity. Used credits never go below zero.
func (l *DefaultCreditLedger) Refund(ctx context.Context, packageID string, count int) (*models.ServicePackage, error) {
	if count <= 0 {
		return nil, fmt.Errorf("refund count must be positive, got %d", count)
	}

	p, err := l.Repo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if p.UsedCredits-count < 0 {
		return nil, fmt.Errorf("refund of %d exceeds %d used credit(s) on package %s",
			count, p.UsedCredits, p.ID)
	}

	newUsed := p.UsedCredits - count
	newStatus := p.Status
	if p.Status == models.PackageDepleted && newUsed < p.TotalCredits {
		newStatus = models.PackageActive
	}

	ok, err := l.Repo.UpdateCredits(ctx, p.ID, p.UsedCredits, newUsed, newStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to refund credits on package %s: %w", p.ID, err)
	}
	if !ok {
		return nil, &ConcurrencyConflictError{PackageID: p.ID}
	}

	p.UsedCredits = newUsed
	p.Status = newStatus
	return p, nil
}

func (l *DefaultCreditLedger) Get(ctx context.Context, packageID string) (*models.ServicePackage, error) {
	return l.Repo.GetByID(ctx, packageID)
}

func (l *DefaultCreditLedger) ListByOwner(ctx context.Context, ownerID string) ([]models.ServicePackage, error) {
	return l.Repo.ListByOwner(ctx, ownerID)
}

// IsUsable reports whether a booking can be made against the package.
func (l *DefaultCreditLedger) IsUsable(p *models.ServicePackage) bool {
	if p == nil || p.Status != models.PackageActive {
		return false
	}
	if p.ExpiredAt(l.now()) {
		return false
	}
	return p.UsedCredits < p.TotalCredits
}

// checkUsable classifies an unusable package. Expiry is checked lazily: an
// active package past its expiry is marked expired here (best-effort) and
// reported as expired, never silently consumed.
func (l *DefaultCreditLedger) checkUsable(ctx context.Context, p *models.ServicePackage) error {
	if p.Status == models.PackageActive && p.ExpiredAt(l.now()) {
		if _, err := l.Repo.SetStatus(ctx, p.ID, models.PackageActive, models.PackageExpired); err != nil && l.Logger != nil {
			l.Logger.Warn("failed to mark package expired", zap.String("packageId", p.ID), zap.Error(err))
		}
		return &PackageExpiredError{PackageID: p.ID, ExpiredAt: *p.ExpiresAt}
	}
	switch p.Status {
	case models.PackageActive:
		return nil
	case models.PackageDepleted:
		// Reported as insufficient credits by the caller's remaining check.
		return nil
	case models.PackageExpired:
		expiredAt := l.now()
		if p.ExpiresAt != nil {
			expiredAt = *p.ExpiresAt
		}
		return &PackageExpiredError{PackageID: p.ID, ExpiredAt: expiredAt}
	default:
		return &PackageNotActiveError{PackageID: p.ID, Status: p.Status}
	}
}

package packageRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"zela/models"
)

// MemoryPackageRepo is an in-memory Repository with the same CAS semantics
// as the Mongo implementation. Used by tests and local development.
type MemoryPackageRepo struct {
	mu       sync.Mutex
	packages map[string]models.ServicePackage
}

func NewMemoryPackageRepo() *MemoryPackageRepo {
	return &MemoryPackageRepo{packages: make(map[string]models.ServicePackage)}
}

func (r *MemoryPackageRepo) Create(_ context.Context, p *models.ServicePackage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.packages[p.ID]; exists {
		return fmt.Errorf("service package %s already exists", p.ID)
	}
	r.packages[p.ID] = *p
	return nil
}

func (r *MemoryPackageRepo) GetByID(_ context.Context, id string) (*models.ServicePackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.packages[id]
	if !ok {
		return nil, fmt.Errorf("service package %s not found", id)
	}
	return &p, nil
}

func (r *MemoryPackageRepo) ListByOwner(_ context.Context, ownerID string) ([]models.ServicePackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ServicePackage
	for _, p := range r.packages {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryPackageRepo) UpdateCredits(_ context.Context, id string, expectedUsed, newUsed int, status models.PackageStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.packages[id]
	if !ok || p.UsedCredits != expectedUsed {
		return false, nil
	}
	p.UsedCredits = newUsed
	p.Status = status
	r.packages[id] = p
	return true, nil
}

func (r *MemoryPackageRepo) SetStatus(_ context.Context, id string, from, to models.PackageStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.packages[id]
	if !ok || p.Status != from {
		return false, nil
	}
	p.Status = to
	r.packages[id] = p
	return true, nil
}

func (r *MemoryPackageRepo) MarkExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, p := range r.packages {
		if p.Status == models.PackageActive && p.ExpiresAt != nil && p.ExpiresAt.Before(before) {
			p.Status = models.PackageExpired
			r.packages[id] = p
			n++
		}
	}
	return n, nil
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"zela/models"
	"zela/services/ledger"
	"zela/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PackageHandler exposes prepaid package purchase and lookup.
type PackageHandler struct {
	Ledger ledger.CreditLedger
	Logger *zap.Logger
}

func NewPackageHandler(l ledger.CreditLedger, logger *zap.Logger) *PackageHandler {
	return &PackageHandler{Ledger: l, Logger: logger}
}

// Purchase creates a new active package from a catalog option.
func (h *PackageHandler) Purchase(c *gin.Context) {
	var input struct {
		OwnerID     string               `json:"ownerId" binding:"required"`
		WorkerID    string               `json:"workerId"`
		ServiceSlug string               `json:"serviceSlug" binding:"required"`
		Option      models.PackageOption `json:"option" binding:"required"`
		Currency    string               `json:"currency"`
		ExpiresAt   *time.Time           `json:"expiresAt"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	pkg, err := h.Ledger.Purchase(c.Request.Context(), ledger.PurchaseInput{
		OwnerID:     input.OwnerID,
		WorkerID:    input.WorkerID,
		ServiceSlug: input.ServiceSlug,
		Option:      input.Option,
		Currency:    input.Currency,
		ExpiresAt:   input.ExpiresAt,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to purchase package", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"package": pkg})
}

// List returns the packages owned by a user.
func (h *PackageHandler) List(c *gin.Context) {
	ownerID := c.Query("ownerId")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ownerId query parameter is required"})
		return
	}

	packages, err := h.Ledger.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list packages", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": packages})
}

// Get returns a single package with its usability.
func (h *PackageHandler) Get(c *gin.Context) {
	pkg, err := h.Ledger.Get(c.Request.Context(), c.Param("packageID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "package not found", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"package": pkg,
		"usable":  h.Ledger.IsUsable(pkg),
	})
}

// Refund returns credits to a package, typically after a cancelled booking.
func (h *PackageHandler) Refund(c *gin.Context) {
	var input struct {
		Count int `json:"count" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	pkg, err := h.Ledger.Refund(c.Request.Context(), c.Param("packageID"), input.Count)
	if err != nil {
		var conflict *ledger.ConcurrencyConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "package was modified concurrently, retry", "details": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to refund credits", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"package": pkg})
}

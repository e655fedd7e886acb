package handlers

import (
	"net/http"

	"zela/services/booking"
	"zela/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceHandler exposes service category flow configurations.
type ServiceHandler struct {
	Catalog booking.CatalogStore
	Logger  *zap.Logger
}

func NewServiceHandler(catalog booking.CatalogStore, logger *zap.Logger) *ServiceHandler {
	return &ServiceHandler{Catalog: catalog, Logger: logger}
}

// GetConfig returns the resolved flow configuration for a service slug,
// after defaults and degradation rules have been applied.
func (h *ServiceHandler) GetConfig(c *gin.Context) {
	cfg, err := h.Catalog.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load service config", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"config":   cfg,
		"sequence": booking.BuildSequence(*cfg),
	})
}

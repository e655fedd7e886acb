package handlers

import (
	"errors"
	"net/http"

	"zela/models"
	"zela/services/booking"
	"zela/services/ledger"
	"zela/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking flow over HTTP.
type BookingHandler struct {
	Service booking.BookingSessionService
	Logger  *zap.Logger
}

func NewBookingHandler(service booking.BookingSessionService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: service, Logger: logger}
}

// screenView flattens the session's navigation state for clients.
func screenView(s *models.BookingSession) booking.ScreenView {
	return booking.ScreenView{
		SessionID: s.SessionID,
		Screen:    booking.Current(s.Flow),
		Index:     s.Flow.Index,
		Progress:  booking.Progress(s.Flow),
		IsLast:    booking.IsLast(s.Flow),
	}
}

// StartFlow creates a new booking session for a service category.
func (h *BookingHandler) StartFlow(c *gin.Context) {
	var input struct {
		Service string `json:"service" binding:"required"`
		UserID  string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.StartFlow(c.Request.Context(), input.Service, input.UserID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to start booking flow", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": screenView(session),
		"flow":    session.Flow.Sequence,
	})
}

// GetScreen returns the current screen and progress for a session.
func (h *BookingHandler) GetScreen(c *gin.Context) {
	session, err := h.Service.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, screenView(session))
}

// SubmitScreen stores the current screen's data and advances the flow.
func (h *BookingHandler) SubmitScreen(c *gin.Context) {
	var input struct {
		Screen string                 `json:"screen"`
		Data   map[string]interface{} `json:"data"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.SubmitScreen(c.Request.Context(), c.Param("sessionID"), input.Screen, input.Data)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, screenView(session))
}

// Back moves the session to the previous screen.
func (h *BookingHandler) Back(c *gin.Context) {
	session, err := h.Service.Back(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, screenView(session))
}

// Jump navigates directly to a named screen.
func (h *BookingHandler) Jump(c *gin.Context) {
	var input struct {
		Screen string `json:"screen" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.Jump(c.Request.Context(), c.Param("sessionID"), input.Screen)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, screenView(session))
}

// SelectWorker records the chosen worker.
func (h *BookingHandler) SelectWorker(c *gin.Context) {
	var input struct {
		WorkerID string `json:"workerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.SelectWorker(c.Request.Context(), c.Param("sessionID"), input.WorkerID)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, screenView(session))
}

// SelectPackage records the prepaid package to book against.
func (h *BookingHandler) SelectPackage(c *gin.Context) {
	var input struct {
		PackageID string `json:"packageId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.SelectPackage(c.Request.Context(), c.Param("sessionID"), input.PackageID)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, screenView(session))
}

// Quote prices the session from its accumulated data.
func (h *BookingHandler) Quote(c *gin.Context) {
	price, err := h.Service.Quote(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		var facts *booking.InvalidFactsError
		if errors.As(err, &facts) {
			// The client should re-prompt the relevant screen.
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "incomplete booking data", "details": facts.Error()})
			return
		}
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, price)
}

// Confirm finalizes the booking.
func (h *BookingHandler) Confirm(c *gin.Context) {
	var input booking.ConfirmRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	bk, err := h.Service.Confirm(c.Request.Context(), c.Param("sessionID"), input)
	if err != nil {
		h.confirmError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": bk})
}

// Cancel abandons the session.
func (h *BookingHandler) Cancel(c *gin.Context) {
	if err := h.Service.Cancel(c.Request.Context(), c.Param("sessionID")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (h *BookingHandler) sessionError(c *gin.Context, err error) {
	var flowErr *booking.FlowError
	if errors.As(err, &flowErr) {
		status := http.StatusBadRequest
		if flowErr.Code == "sessionNotFound" {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": flowErr.Message, "code": flowErr.Code})
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "booking session error", err.Error())
}

func (h *BookingHandler) confirmError(c *gin.Context, err error) {
	var (
		facts        *booking.InvalidFactsError
		insufficient *ledger.InsufficientCreditsError
		expired      *ledger.PackageExpiredError
		notActive    *ledger.PackageNotActiveError
	)
	switch {
	case errors.As(err, &facts):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "incomplete booking data", "details": facts.Error()})
	case errors.As(err, &insufficient), errors.As(err, &expired), errors.As(err, &notActive):
		// Package unusable: the client offers an alternate payment.
		c.JSON(http.StatusConflict, gin.H{"error": "package unusable", "details": err.Error()})
	default:
		h.sessionError(c, err)
	}
}

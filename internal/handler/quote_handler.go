package handler

import (
	"errors"
	"net/http"

	"github.com/Kilat-Pet-Delivery/service-estimate/internal/application"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/quote"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/response"
	"github.com/gin-gonic/gin"
)

// CreateQuoteRequest is the body of POST /api/v1/quotes.
type CreateQuoteRequest struct {
	Pickup   string `json:"pickup"`
	Delivery string `json:"delivery"`
	Email    string `json:"email"`
}

// QuoteHandler runs a server-side estimate run per request.
type QuoteHandler struct {
	deps application.QuoteDependencies
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(deps application.QuoteDependencies) *QuoteHandler {
	return &QuoteHandler{deps: deps}
}

// RegisterRoutes registers the quote routes on the given router group.
func (h *QuoteHandler) RegisterRoutes(r *gin.RouterGroup) {
	quotes := r.Group("/api/v1/quotes")
	{
		quotes.POST("", h.CreateQuote)
	}
}

// CreateQuote handles POST /api/v1/quotes. The response data is the final
// view, so a failed email still returns 200 with the estimate and an alert.
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	orchestrator := application.NewQuoteOrchestrator(h.deps, nil)
	_, err := orchestrator.Submit(c.Request.Context(), quote.Input{
		Pickup:   req.Pickup,
		Delivery: req.Delivery,
		Email:    req.Email,
	})
	view := orchestrator.View()

	switch {
	case err == nil, errors.Is(err, quote.ErrNotificationUnavailable):
		response.Success(c, view)
	case quote.IsValidationError(err):
		response.Error(c, http.StatusBadRequest, view.Alert.Message, view)
	case errors.Is(err, quote.ErrRoutingUnavailable):
		response.Error(c, http.StatusUnprocessableEntity, view.Alert.Message, view)
	default:
		response.Error(c, http.StatusInternalServerError, "estimate failed", nil)
	}
}

package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/Kilat-Pet-Delivery/service-estimate/internal/application"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/quote"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Response bodies of the estimate function. Callers match on them.
const (
	BodyOK                  = "OK"
	BodyInvalidJSON         = "Invalid JSON"
	BodyMissingFields       = "Missing required fields"
	BodyMethodNotAllowed    = "Method Not Allowed"
	BodyEmailSendFailed     = "Email send failed"
	BodyInternalServerError = "Internal Server Error"
	BodyPayloadTooLarge     = "Payload Too Large"
)

// Paths the estimate function is served on.
const (
	EstimateSendPath   = "/api/v1/estimates/send"
	LegacyFunctionPath = "/.netlify/functions/send-estimate"
)

// maxNoticeBody caps the request body; larger bodies get 413.
const maxNoticeBody = 64 << 10

// EstimateHandler serves the notification function over HTTP.
type EstimateHandler struct {
	service  *application.NotificationService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewEstimateHandler creates a new EstimateHandler.
func NewEstimateHandler(service *application.NotificationService, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes registers the function on its current and legacy paths.
func (h *EstimateHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.Any(EstimateSendPath, h.SendEstimate)
	r.Any(LegacyFunctionPath, h.SendEstimate)
}

// RegisterFallback answers methods outside gin's Any set (PROPFIND and other
// extension methods) on the function paths with 405 instead of 404.
func (h *EstimateHandler) RegisterFallback(e *gin.Engine) {
	e.NoRoute(func(c *gin.Context) {
		switch c.Request.URL.Path {
		case EstimateSendPath, LegacyFunctionPath:
			c.String(http.StatusMethodNotAllowed, BodyMethodNotAllowed)
		}
	})
}

// SendEstimate handles OPTIONS and POST; every other method gets 405.
func (h *EstimateHandler) SendEstimate(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodOptions:
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Status(http.StatusOK)
	case http.MethodPost:
		h.post(c)
	default:
		c.String(http.StatusMethodNotAllowed, BodyMethodNotAllowed)
	}
}

func (h *EstimateHandler) post(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxNoticeBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.String(http.StatusRequestEntityTooLarge, BodyPayloadTooLarge)
			return
		}
		c.String(http.StatusBadRequest, BodyInvalidJSON)
		return
	}
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	notice, err := decodeNotice(raw)
	if err != nil {
		c.String(http.StatusBadRequest, BodyInvalidJSON)
		return
	}
	if err := h.validate.Struct(notice); err != nil {
		c.String(http.StatusBadRequest, BodyMissingFields)
		return
	}

	result := h.service.Send(c.Request.Context(), notice)
	switch result.Reason {
	case application.ReasonNone:
		c.Header("Access-Control-Allow-Origin", "*")
		c.String(http.StatusOK, BodyOK)
	case application.ReasonBadRequest:
		c.String(http.StatusBadRequest, BodyMissingFields)
	case application.ReasonServiceUnavailable:
		h.logger.Error("estimate function misconfigured", zap.Error(quote.ErrConfiguration))
		c.String(http.StatusInternalServerError, BodyInternalServerError)
	default:
		c.Header("Access-Control-Allow-Origin", "*")
		c.String(http.StatusInternalServerError, BodyEmailSendFailed)
	}
}

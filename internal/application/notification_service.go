package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/notification"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/quote"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/events"
	"go.uber.org/zap"
)

// Email subjects and titles.
const (
	DefaultBrand       = "JML Hotshots"
	customerTitle      = "Your estimate is ready"
	internalSubject    = "New estimate generated"
	internalTitle      = "New estimate generated"
	customerEmailLabel = "Customer email"
	customerSubjectFmt = "Your %s estimate"
)

// publishTimeout bounds how long an outcome event may hold up the response.
const publishTimeout = 2 * time.Second

// Reason classifies a failed SendResult.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonBadRequest         Reason = "bad_request"
	ReasonServiceUnavailable Reason = "service_unavailable"
	ReasonSendFailed         Reason = "send_failed"
)

// SendResult is the single outcome of a notification request.
type SendResult struct {
	Success bool   `json:"success"`
	Reason  Reason `json:"reason,omitempty"`
}

// Err converts a failed result into an error.
func (r SendResult) Err() error {
	if r.Success {
		return nil
	}
	return fmt.Errorf("estimate notification failed: %s", r.Reason)
}

// NotificationConfig holds the email credentials and addresses.
type NotificationConfig struct {
	APIKey   string
	From     string
	NotifyTo string
	Brand    string
}

// IsComplete reports whether every required setting is present.
func (c NotificationConfig) IsComplete() bool {
	return c.APIKey != "" && c.From != "" && c.NotifyTo != ""
}

// EventPublisher publishes domain events.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, data interface{}) error
}

// NotificationService emails an estimate to the customer and to dispatch.
type NotificationService struct {
	sender    notification.Sender
	config    NotificationConfig
	publisher EventPublisher
	logger    *zap.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	sender notification.Sender,
	config NotificationConfig,
	publisher EventPublisher,
	logger *zap.Logger,
) *NotificationService {
	if config.Brand == "" {
		config.Brand = DefaultBrand
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		sender:    sender,
		config:    config,
		publisher: publisher,
		logger:    logger,
	}
}

// Send validates the notice and sends the customer copy, then the internal copy.
// Either send failing fails the whole request.
func (s *NotificationService) Send(ctx context.Context, n quote.Notice) SendResult {
	if !n.HasRequiredFields() {
		return SendResult{Reason: ReasonBadRequest}
	}
	if !s.config.IsComplete() {
		s.logger.Error("email configuration incomplete", zap.Error(quote.ErrConfiguration))
		return SendResult{Reason: ReasonServiceUnavailable}
	}

	messages, err := s.buildMessages(n)
	if err != nil {
		s.logger.Error("failed to build estimate emails", zap.Error(err))
		return SendResult{Reason: ReasonSendFailed}
	}

	for _, msg := range messages {
		if err := s.sender.Send(ctx, msg); err != nil {
			s.logger.Error("failed to send estimate email",
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
			s.publishOutcome(ctx, n, false)
			return SendResult{Reason: ReasonSendFailed}
		}
	}

	s.logger.Info("estimate emails sent",
		zap.String("pickup", n.Pickup),
		zap.String("delivery", n.Delivery),
		zap.String("estimate", n.Estimate),
	)
	s.publishOutcome(ctx, n, true)
	return SendResult{Success: true}
}

// buildMessages returns the customer message followed by the internal one.
func (s *NotificationService) buildMessages(n quote.Notice) ([]notification.Message, error) {
	rows := estimateRows(n)

	customerHTML, err := renderEstimateEmail(customerTitle, rows)
	if err != nil {
		return nil, err
	}

	internalRows := append([]notification.Row{{Label: customerEmailLabel, Value: n.Email}}, rows...)
	internalHTML, err := renderEstimateEmail(internalTitle, internalRows)
	if err != nil {
		return nil, err
	}

	return []notification.Message{
		{
			From:    s.config.From,
			To:      []string{n.Email},
			Subject: fmt.Sprintf(customerSubjectFmt, s.config.Brand),
			HTML:    customerHTML,
		},
		{
			From:    s.config.From,
			To:      []string{s.config.NotifyTo},
			ReplyTo: n.Email,
			Subject: internalSubject,
			HTML:    internalHTML,
		},
	}, nil
}

func (s *NotificationService) publishOutcome(ctx context.Context, n quote.Notice, delivered bool) {
	eventType := events.EstimateNotified
	if !delivered {
		eventType = events.EstimateNotificationFailed
	}

	evt := events.EstimateNotifiedEvent{
		Pickup:     n.Pickup,
		Delivery:   n.Delivery,
		DistanceKm: n.DistanceKm.String(),
		Duration:   n.Duration,
		Estimate:   n.Estimate,
		Delivered:  delivered,
		OccurredAt: time.Now().UTC(),
	}
	// Detached from the request so a cancelled caller still records the outcome.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, eventType, n.Pickup+"|"+n.Delivery, evt); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

// LocalNotifier runs the NotificationService in-process for the orchestrator.
type LocalNotifier struct {
	service *NotificationService
}

// NewLocalNotifier creates a new LocalNotifier.
func NewLocalNotifier(service *NotificationService) *LocalNotifier {
	return &LocalNotifier{service: service}
}

// Notify implements Notifier.
func (l *LocalNotifier) Notify(ctx context.Context, n quote.Notice) error {
	return l.service.Send(ctx, n).Err()
}

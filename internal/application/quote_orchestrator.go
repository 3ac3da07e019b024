package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/estimate"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/quote"
	"go.uber.org/zap"
)

var (
	// ErrQuoteInFlight is returned when Submit is called while a request is pending.
	ErrQuoteInFlight = errors.New("an estimate request is already in flight")

	// ErrQuoteRestarted is returned when a restart discarded the pending request.
	ErrQuoteRestarted = errors.New("estimate request discarded by restart")
)

// Notifier forwards a computed quote to the notification service.
type Notifier interface {
	Notify(ctx context.Context, notice quote.Notice) error
}

// ReachabilityFunc reports whether this deployment can reach the notification endpoint.
type ReachabilityFunc func() bool

// AlwaysReachable is the ReachabilityFunc for served deployments.
func AlwaysReachable() bool { return true }

// QuoteDependencies holds the collaborators an orchestrator needs.
type QuoteDependencies struct {
	Router    quote.RouteProvider
	Pricing   estimate.PricingStrategy
	Currency  *estimate.CurrencyFormatter
	Notifier  Notifier
	CanNotify ReachabilityFunc
	Logger    *zap.Logger
}

// QuoteOrchestrator drives one customer's estimate form from submit to result.
type QuoteOrchestrator struct {
	router    quote.RouteProvider
	pricing   estimate.PricingStrategy
	currency  *estimate.CurrencyFormatter
	notifier  Notifier
	canNotify ReachabilityFunc
	display   Display
	logger    *zap.Logger

	mu         sync.Mutex
	view       QuoteView
	generation uint64
}

// NewQuoteOrchestrator creates a new QuoteOrchestrator and renders its initial view.
func NewQuoteOrchestrator(deps QuoteDependencies, display Display) *QuoteOrchestrator {
	if deps.Pricing == nil {
		deps.Pricing = estimate.NewStandardPricingStrategy(estimate.DefaultPricingConfig())
	}
	if deps.Currency == nil {
		deps.Currency = estimate.DefaultCurrencyFormatter()
	}
	switch {
	case deps.Notifier == nil:
		deps.CanNotify = func() bool { return false }
	case deps.CanNotify == nil:
		deps.CanNotify = AlwaysReachable
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if display == nil {
		display = NopDisplay{}
	}

	o := &QuoteOrchestrator{
		router:    deps.Router,
		pricing:   deps.Pricing,
		currency:  deps.Currency,
		notifier:  deps.Notifier,
		canNotify: deps.CanNotify,
		display:   display,
		logger:    deps.Logger,
		view:      initialView(),
	}
	o.render()
	return o
}

// View returns a snapshot of the current observable state.
func (o *QuoteOrchestrator) View() QuoteView {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view
}

// Submit runs one estimate: validate, route, compute, notify.
//
// A nil error means the customer sees the result (emailed, or offline preview).
// ErrNotificationUnavailable is returned together with the quote because the
// result is still shown. Validation and routing failures return no quote.
func (o *QuoteOrchestrator) Submit(ctx context.Context, raw quote.Input) (*quote.Quote, error) {
	in := raw.Normalized()

	o.mu.Lock()
	if o.view.State.IsInFlight() {
		o.mu.Unlock()
		return nil, ErrQuoteInFlight
	}
	if o.view.State.IsTerminal() {
		o.clearDerived()
	}

	o.transition(quote.StateValidating)
	if err := in.Validate(); err != nil {
		var ve *quote.ValidationError
		if errors.As(err, &ve) {
			o.setAlert(errorAlert(ve.Message))
		}
		o.transition(quote.StateIdle)
		o.mu.Unlock()
		return nil, err
	}

	o.setAlert(Alert{})
	o.setBusy(true)
	o.transition(quote.StateRoutingInFlight)
	gen := o.generation
	o.mu.Unlock()

	route, routeErr := o.router.Route(ctx, in.Pickup, in.Delivery)

	o.mu.Lock()
	if gen != o.generation {
		o.mu.Unlock()
		return nil, ErrQuoteRestarted
	}
	if routeErr != nil {
		o.logger.Warn("route lookup failed", zap.Error(routeErr))
		o.transition(quote.StateFailed)
		o.setAlert(errorAlert(MsgRouteUnavailable))
		o.showResult(false)
		o.setBusy(false)
		o.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", quote.ErrRoutingUnavailable, routeErr)
	}

	o.transition(quote.StateComputing)
	route = route.Clamped()
	breakdown := o.pricing.Calculate(route.OneWayDistanceKm, route.OneWayDurationSeconds)
	q := quote.NewQuote(in, route, breakdown, o.currency)
	o.view.Quote = q
	o.setSummary(summaryFor(q))

	o.logger.Info("estimate computed",
		zap.String("quote_id", q.ID.String()),
		zap.Float64("one_way_km", q.OneWayDistanceKm),
		zap.Int("one_way_seconds", q.OneWayDurationSeconds),
		zap.String("fare_model", string(breakdown.Model)),
		zap.Float64("amount", breakdown.Amount),
	)

	if !o.canNotify() {
		o.transition(quote.StateSuccess)
		o.showResult(true)
		o.setAlert(Alert{Kind: AlertAdvisory, Message: MsgOfflinePreview})
		o.setBusy(false)
		o.mu.Unlock()
		return q, nil
	}

	o.transition(quote.StateNotifyInFlight)
	o.mu.Unlock()

	notifyErr := o.notifier.Notify(ctx, q.Notice())

	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.generation {
		return nil, ErrQuoteRestarted
	}

	// The estimate is shown whether or not the email went out.
	o.showResult(true)
	if notifyErr != nil {
		o.logger.Warn("estimate notification failed",
			zap.String("quote_id", q.ID.String()),
			zap.Error(notifyErr),
		)
		o.transition(quote.StateFailed)
		o.setAlert(errorAlert(MsgNotifyFailed))
		o.setBusy(false)
		return q, fmt.Errorf("%w: %w", quote.ErrNotificationUnavailable, notifyErr)
	}

	o.transition(quote.StateSuccess)
	o.setAlert(Alert{})
	o.setBusy(false)
	return q, nil
}

// Restart clears the form and every derived field and returns to Idle.
// A request still in flight is discarded when it completes.
func (o *QuoteOrchestrator) Restart() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.generation++
	o.view = initialView()
	o.display.ClearForm()
	o.render()
}

// clearDerived drops the previous result before a new submission.
func (o *QuoteOrchestrator) clearDerived() {
	o.view.Quote = nil
	o.setSummary(PlaceholderSummary())
	o.showResult(false)
}

func (o *QuoteOrchestrator) render() {
	o.display.SetSummary(o.view.Summary)
	o.display.ShowResult(o.view.ResultVisible)
	o.display.SetAlert(o.view.Alert)
	o.display.SetBusy(o.view.Busy)
}

func (o *QuoteOrchestrator) transition(to quote.State) {
	if !o.view.State.CanTransitionTo(to) {
		o.logger.Warn("unexpected quote state transition",
			zap.String("from", o.view.State.String()),
			zap.String("to", to.String()),
		)
	}
	o.view.State = to
}

func (o *QuoteOrchestrator) setBusy(busy bool) {
	o.view.Busy = busy
	o.display.SetBusy(busy)
}

func (o *QuoteOrchestrator) setAlert(alert Alert) {
	o.view.Alert = alert
	o.display.SetAlert(alert)
}

func (o *QuoteOrchestrator) setSummary(summary Summary) {
	o.view.Summary = summary
	o.display.SetSummary(summary)
}

func (o *QuoteOrchestrator) showResult(visible bool) {
	o.view.ResultVisible = visible
	o.display.ShowResult(visible)
}

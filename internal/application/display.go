package application

import "github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/quote"

// Copy shown on the estimate card.
const (
	SummaryPlaceholder = "-"
	EmailPrompt        = "Check your email (and spam folder)"

	MsgRouteUnavailable = "Route not available - call for a formal quote."
	MsgNotifyFailed     = "We could not email the estimate. Please try again or call for a formal quote."
	MsgOfflinePreview   = "Email sending is unavailable in this preview. Serve the site over http(s) to email the estimate."
)

// AlertKind separates errors from advisory notes.
type AlertKind string

const (
	AlertNone     AlertKind = ""
	AlertError    AlertKind = "error"
	AlertAdvisory AlertKind = "advisory"
)

// Alert is the single message line under the form.
type Alert struct {
	Kind    AlertKind `json:"kind,omitempty"`
	Message string    `json:"message,omitempty"`
}

// IsZero reports whether no alert is shown.
func (a Alert) IsZero() bool {
	return a.Message == ""
}

func errorAlert(msg string) Alert {
	return Alert{Kind: AlertError, Message: msg}
}

// Summary holds the rendered route details.
type Summary struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Distance string `json:"distance"`
	Time     string `json:"time"`
	Estimate string `json:"estimate"`
	Status   string `json:"status"`
}

// PlaceholderSummary returns the summary shown before a route is known.
func PlaceholderSummary() Summary {
	return Summary{
		From:     SummaryPlaceholder,
		To:       SummaryPlaceholder,
		Distance: SummaryPlaceholder,
		Time:     SummaryPlaceholder,
		Estimate: SummaryPlaceholder,
		Status:   EmailPrompt,
	}
}

func summaryFor(q *quote.Quote) Summary {
	return Summary{
		From:     q.OriginLabel,
		To:       q.DestinationLabel,
		Distance: q.FormattedDistance,
		Time:     q.FormattedDuration,
		Estimate: q.FormattedEstimate,
		Status:   EmailPrompt,
	}
}

// QuoteView is the observable state of one orchestrator.
type QuoteView struct {
	State         quote.State  `json:"state"`
	Busy          bool         `json:"busy"`
	Alert         Alert        `json:"alert"`
	Summary       Summary      `json:"summary"`
	ResultVisible bool         `json:"result_visible"`
	Quote         *quote.Quote `json:"quote,omitempty"`
}

func initialView() QuoteView {
	return QuoteView{State: quote.StateIdle, Summary: PlaceholderSummary()}
}

// Display is the rendering surface the orchestrator drives.
type Display interface {
	// SetBusy toggles the submit control between ready and in-flight.
	SetBusy(busy bool)
	// SetAlert shows the alert line; a zero Alert clears it.
	SetAlert(alert Alert)
	// SetSummary renders the route summary fields.
	SetSummary(summary Summary)
	// ShowResult reveals or hides the result view and its distance row.
	ShowResult(visible bool)
	// ClearForm empties the input fields and any rendered route.
	ClearForm()
}

// NopDisplay discards every update.
type NopDisplay struct{}

func (NopDisplay) SetBusy(bool) {}

func (NopDisplay) SetAlert(Alert) {}

func (NopDisplay) SetSummary(Summary) {}

func (NopDisplay) ShowResult(bool) {}

func (NopDisplay) ClearForm() {}

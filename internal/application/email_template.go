package application

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/notification"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/quote"
)

const notAvailable = "N/A"

var estimateEmailTemplate = template.Must(template.New("estimate").Parse(`
<div style="font-family:Arial,sans-serif;line-height:1.5;color:#0b1f2a;">
  <h2 style="margin:0 0 12px;font-size:22px;">{{.Title}}</h2>
  <table style="width:100%;border-collapse:collapse;">
    {{- range .Rows}}<tr><td style="padding:6px 0;font-weight:600;">{{.Label}}</td><td style="padding:6px 0;">{{.Value}}</td></tr>{{end}}
  </table>
  <p style="margin:16px 0 0;color:#4a606c;">Final pricing depends on load size, timing, and site access.</p>
</div>
`))

// estimateRows builds the rows shared by the customer and internal emails.
func estimateRows(n quote.Notice) []notification.Row {
	distance := notAvailable
	if n.DistanceKm != "" {
		distance = n.DistanceKm.String() + " km"
	}
	duration := n.Duration
	if duration == "" {
		duration = notAvailable
	}

	return []notification.Row{
		{Label: "From", Value: n.Pickup},
		{Label: "To", Value: n.Delivery},
		{Label: "Distance", Value: distance},
		{Label: "Time", Value: duration},
		{Label: "Minimum estimate", Value: n.Estimate},
	}
}

// renderEstimateEmail renders the HTML body; every value is escaped.
func renderEstimateEmail(title string, rows []notification.Row) (string, error) {
	var buf bytes.Buffer
	err := estimateEmailTemplate.Execute(&buf, struct {
		Title string
		Rows  []notification.Row
	}{Title: title, Rows: rows})
	if err != nil {
		return "", fmt.Errorf("failed to render estimate email: %w", err)
	}
	return buf.String(), nil
}

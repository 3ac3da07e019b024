package estimate

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Default display settings for quoted amounts.
const (
	DefaultLocale         = "en-AU"
	DefaultCurrencySymbol = "$"
)

// CurrencyFormatter renders whole-unit currency amounts for one locale.
type CurrencyFormatter struct {
	printer *message.Printer
	symbol  string
}

// NewCurrencyFormatter creates a formatter for the given BCP 47 locale.
func NewCurrencyFormatter(locale, symbol string) (*CurrencyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid currency locale %q: %w", locale, err)
	}
	return &CurrencyFormatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}, nil
}

// DefaultCurrencyFormatter returns the en-AU dollar formatter.
func DefaultCurrencyFormatter() *CurrencyFormatter {
	return &CurrencyFormatter{
		printer: message.NewPrinter(language.MustParse(DefaultLocale)),
		symbol:  DefaultCurrencySymbol,
	}
}

// Format rounds to the nearest whole unit and applies locale grouping.
func (f *CurrencyFormatter) Format(amount float64) string {
	rounded := int64(math.Round(amount))
	if rounded < 0 {
		return "-" + f.symbol + f.printer.Sprintf("%d", -rounded)
	}
	return f.symbol + f.printer.Sprintf("%d", rounded)
}

// FormatDuration renders seconds as "H hr M min", rounded to the nearest minute.
func FormatDuration(seconds int) string {
	totalMinutes := int(math.Round(float64(seconds) / 60))
	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	if hours <= 0 {
		return strconv.Itoa(minutes) + " min"
	}
	if minutes == 0 {
		return strconv.Itoa(hours) + " hr"
	}
	return strconv.Itoa(hours) + " hr " + strconv.Itoa(minutes) + " min"
}

// FormatKm renders a distance with one decimal place and no unit.
func FormatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', 1, 64)
}

// FormatDistance renders a distance as "12.3 km".
func FormatDistance(km float64) string {
	return FormatKm(km) + " km"
}

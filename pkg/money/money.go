// Package money renders decimal amounts for chat messages.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/Proton-105/warung-bot/pkg/config"
)

// Formatter renders amounts with a currency symbol using locale grouping.
type Formatter struct {
	symbol  string
	digits  int
	printer *message.Printer
}

// NewFormatter builds a Formatter from currency config. Unknown locales fall back to Indonesian.
func NewFormatter(cfg config.CurrencyConfig) *Formatter {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.Indonesian
	}

	return &Formatter{
		symbol:  strings.TrimSpace(cfg.Symbol),
		digits:  cfg.FractionDigits,
		printer: message.NewPrinter(tag),
	}
}

// Format renders amount, rounding half away from zero to the configured fraction digits.
func (f *Formatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(int32(f.digits))
	value, _ := rounded.Float64()

	formatted := f.printer.Sprint(number.Decimal(value, number.Scale(f.digits)))
	if f.symbol == "" {
		return formatted
	}

	return fmt.Sprintf("%s %s", f.symbol, formatted)
}

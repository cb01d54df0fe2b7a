package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts with a symbol prefix and thousands separators,
// e.g. "₹24,500" or "₹1,250.50".
type Formatter struct {
	Symbol  string
	printer *message.Printer
}

func NewFormatter(symbol string) Formatter {
	return Formatter{
		Symbol:  symbol,
		printer: message.NewPrinter(language.English),
	}
}

func (f Formatter) Format(amount decimal.Decimal) string {
	p := f.printer
	if p == nil {
		p = message.NewPrinter(language.English)
	}

	// Fractions stay in decimal; only the whole part goes through the printer.
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	whole := p.Sprintf("%s%s%d", sign, f.Symbol, amount.IntPart())
	if amount.Equal(amount.Truncate(0)) {
		return whole
	}
	fixed := amount.StringFixed(2)
	return whole + fixed[len(fixed)-3:]
}

// Package report renders a monthly report as PDF or XLSX.
package report

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale selects how amounts and labels are written.
type Locale struct {
	Tag  language.Tag
	Unit currency.Unit
}

// DefaultLocale is Brazilian Portuguese with reais.
var DefaultLocale = Locale{Tag: language.BrazilianPortuguese, Unit: currency.BRL}

// FormatCurrency writes amount with the currency symbol and the grouping and
// decimal separators of tag, always with two fraction digits.
func FormatCurrency(amount decimal.Decimal, tag language.Tag, unit currency.Unit) string {
	p := message.NewPrinter(tag)
	return p.Sprintf("%v %v",
		currency.Symbol(unit),
		number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)),
	)
}

// FormatPercent writes pct with two fraction digits and a percent sign.
func FormatPercent(pct decimal.Decimal, tag language.Tag) string {
	p := message.NewPrinter(tag)
	return p.Sprintf("%v%%", number.Decimal(pct.Round(2).InexactFloat64(), number.Scale(2)))
}

func (l Locale) Money(amount decimal.Decimal) string {
	return FormatCurrency(amount, l.Tag, l.Unit)
}

func (l Locale) Percent(pct decimal.Decimal) string {
	return FormatPercent(pct, l.Tag)
}

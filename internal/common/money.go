package common

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySuffix is appended to every formatted amount.
const CurrencySuffix = "KM"

var moneyPrinter = message.NewPrinter(language.German)

// FormatMoney renders v with German grouping and two decimals, e.g. "1.234,56 KM".
// Non-finite values render as zero.
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return moneyPrinter.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2))) + " " + CurrencySuffix
}

// FormatSignedMoney is FormatMoney with an explicit "+" for positive values.
func FormatSignedMoney(v float64) string {
	if v > 0 && !math.IsInf(v, 0) {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatPercent renders a percentage such as 6.5 as "6,5 %".
func FormatPercent(pct float64) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		pct = 0
	}
	return moneyPrinter.Sprint(number.Decimal(pct, number.MinFractionDigits(1), number.MaxFractionDigits(2))) + " %"
}

// FormatFraction renders a bonus fraction such as 0.15 as "15 %".
func FormatFraction(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	return moneyPrinter.Sprint(number.Decimal(f*100, number.MaxFractionDigits(1))) + " %"
}

package pdf

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var esAR = message.NewPrinter(language.MustParse("es-AR"))

// FormatAmount renders a currency figure the es-AR way: dot thousands
// separator, decimal comma, two decimals, leading peso sign.
func FormatAmount(v float64) string {
	return "$" + esAR.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate renders a date in the document's Spanish long form,
// e.g. "5 de agosto, 2026".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d de %s, %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

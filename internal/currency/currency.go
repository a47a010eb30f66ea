// Package currency formats integer minor-unit amounts for display.
// It is pure presentation; no arithmetic outside this package ever
// leaves the integer domain.
package currency

import "fmt"

// FormatBRL renders an amount in centavos as a BRL price string for the
// given locale ("pt" or anything else for English conventions).
//
//	FormatBRL(349900, "pt") == "R$ 3.499,00"
//	FormatBRL(349900, "en") == "R$3,499.00"
func FormatBRL(minorUnits int64, locale string) string {
	negative := minorUnits < 0
	if negative {
		minorUnits = -minorUnits
	}

	reais := minorUnits / 100
	centavos := minorUnits % 100

	var groupSep, decimalSep byte
	if locale == "pt" {
		groupSep, decimalSep = '.', ','
	} else {
		groupSep, decimalSep = ',', '.'
	}

	digits := fmt.Sprintf("%d", reais)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, groupSep)
		}
		grouped = append(grouped, d)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	if locale == "pt" {
		return fmt.Sprintf("%sR$ %s%c%02d", sign, grouped, decimalSep, centavos)
	}
	return fmt.Sprintf("%sR$%s%c%02d", sign, grouped, decimalSep, centavos)
}

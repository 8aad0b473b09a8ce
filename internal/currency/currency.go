// Package currency converts and formats amounts between the two currencies
// the app supports: US dollars and Congolese francs.
package currency

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Code identifies a supported currency.
type Code string

const (
	USD Code = "USD"
	CDF Code = "CDF"
)

// RateCDFPerUSD is the fixed exchange rate applied by this deployment.
// Updated by deployment, not runtime-configurable.
const RateCDFPerUSD = 2200.0

// ErrUnsupportedCurrency is returned for any pair other than USD<->CDF.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Convert converts amount between USD and CDF. Same-currency conversions
// return the amount unchanged. CDF amounts are rounded to whole francs, USD
// amounts to cents.
func Convert(amount float64, from, to Code) (float64, error) {
	if !supported(from) || !supported(to) {
		return 0, fmt.Errorf("%w: %s->%s", ErrUnsupportedCurrency, from, to)
	}
	if from == to {
		return amount, nil
	}
	if from == USD {
		return math.Round(amount * RateCDFPerUSD), nil
	}
	return math.Round(amount/RateCDFPerUSD*100) / 100, nil
}

// Format renders an amount for display: "$X.XX" for USD, a thousands-grouped
// integer followed by " FC" for CDF. Malformed amounts (NaN, Inf) format as
// the zero value for the currency rather than producing garbage.
func Format(amount float64, code Code) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	switch code {
	case CDF:
		return groupThousands(int64(math.Round(amount))) + " FC"
	default:
		return "$" + strconv.FormatFloat(math.Round(amount*100)/100, 'f', 2, 64)
	}
}

func supported(c Code) bool {
	return c == USD || c == CDF
}

func groupThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}

// Package money formats prices and savings with decimal arithmetic
package money

import "github.com/shopspring/decimal"

// Savings is query minus alt as a two-decimal string, nil when query is absent.
// Negative savings mean the alternative costs more.
func Savings(query *float64, alt float64) *string {
	if query == nil {
		return nil
	}
	s := decimal.NewFromFloat(*query).Sub(decimal.NewFromFloat(alt)).StringFixed(2)
	return &s
}

// Round2 rounds half away from zero to cents
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Parse reads a retailer price string such as "16.99"
func Parse(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	f, _ := d.Round(2).Float64()
	return f, nil
}

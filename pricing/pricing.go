// Package pricing does all money arithmetic on decimals so order totals never
// pick up float drift. Amounts are stored as float64 in the models; conversion
// happens only at the edges of this package.
package pricing

import "github.com/shopspring/decimal"

// LineTotal is price × quantity, rounded to kopecks.
func LineTotal(price float64, quantity int) float64 {
	total := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
	f, _ := total.Round(2).Float64()
	return f
}

// ItemsTotal sums the line totals of (price, quantity) pairs.
func ItemsTotal(lines []Line) float64 {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	f, _ := sum.Round(2).Float64()
	return f
}

// Total is itemsPrice + shippingPrice, computed exactly.
func Total(itemsPrice, shippingPrice float64) float64 {
	f, _ := decimal.NewFromFloat(itemsPrice).Add(decimal.NewFromFloat(shippingPrice)).Round(2).Float64()
	return f
}

// DiscountedPrice applies a percentage discount (0..100) to a price.
func DiscountedPrice(price, discountPct float64) float64 {
	if discountPct <= 0 {
		return price
	}
	if discountPct > 100 {
		discountPct = 100
	}
	factor := decimal.NewFromInt(100).Sub(decimal.NewFromFloat(discountPct)).Div(decimal.NewFromInt(100))
	f, _ := decimal.NewFromFloat(price).Mul(factor).Round(2).Float64()
	return f
}

type Line struct {
	Price    float64
	Quantity int
}

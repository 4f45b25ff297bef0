package ledger

// ComputeTotals derives the monetary fields of a sale from the current
// catalog price. An unresolved product id contributes a zero price, which is
// valid input rather than an error. Percentage and flat discounts compose and
// the result is not clamped at zero.
func ComputeTotals(productID string, quantity int, discountPercentage, discountValue float64, products []Product) (subtotal, total float64) {
	var price float64
	for _, p := range products {
		if p.ID == productID {
			price = p.Price
			break
		}
	}
	subtotal = price * float64(quantity)
	total = subtotal - subtotal*(discountPercentage/100) - discountValue
	return subtotal, total
}

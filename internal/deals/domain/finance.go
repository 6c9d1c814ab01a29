package domain

// Pure financial derivation over a deal snapshot. These functions have no
// side effects and are recomputed at read time, never persisted.

// effectivePrice is the price a commission is earned on: the negotiated
// final price when set, otherwise the asking price.
func effectivePrice(d Deal) float64 {
	if d.FinalPrice != nil {
		return *d.FinalPrice
	}
	return d.VehiclePrice
}

// Commission returns the agent commission on the effective sale price.
func Commission(d Deal) float64 {
	return effectivePrice(d) * d.CommissionRate
}

// ExpectedCommission weights the asking-price commission by the deal's
// probability score.
func ExpectedCommission(d Deal) float64 {
	return d.VehiclePrice * d.CommissionRate * float64(d.Probability) / 100
}

// DiscountAmount returns how far the effective price dropped below asking.
// Never negative: selling above asking is not a discount.
func DiscountAmount(d Deal) float64 {
	discount := d.VehiclePrice - effectivePrice(d)
	if discount < 0 {
		return 0
	}
	return discount
}

// DiscountPercentage returns the discount as a percentage of the asking
// price, or 0 when the asking price is not positive.
func DiscountPercentage(d Deal) float64 {
	if d.VehiclePrice <= 0 {
		return 0
	}
	return DiscountAmount(d) / d.VehiclePrice * 100
}

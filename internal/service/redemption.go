package service

import "github.com/nutriacai/wellness-api/internal/domain"

// RedemptionRates are the conversion constants used to price points against
// an order. PointsPerUnit points buy one whole currency unit of discount;
// MinPayableMinorUnits is the smallest charge the payment provider accepts.
type RedemptionRates struct {
	PointsPerUnit        int64
	MinPayableMinorUnits int64
}

// minorUnitsPerUnit is the number of minor currency units in one unit (cents
// per dollar). All monetary arithmetic is integer math on minor units.
const minorUnitsPerUnit = 100

// ComputeQuote prices a checkout against the caller's available points.
// Points redeem only in whole PointsPerUnit increments, the discount never
// exceeds the whole-unit value of the subtotal, and the payable amount never
// drops below the minimum floor. Pure function, safe to call anywhere.
func ComputeQuote(subtotalMinorUnits, pointsAvailable int64, redeem bool, rates RedemptionRates) domain.RedemptionQuote {
	quote := domain.RedemptionQuote{
		SubtotalMinorUnits: subtotalMinorUnits,
		PointsAvailable:    pointsAvailable,
		PayableMinorUnits:  subtotalMinorUnits,
	}

	if redeem && pointsAvailable > 0 && subtotalMinorUnits > 0 {
		maxBySubtotal := subtotalMinorUnits / minorUnitsPerUnit * rates.PointsPerUnit
		quote.PointsToRedeem = min(pointsAvailable, maxBySubtotal)
		quote.DiscountMinorUnits = quote.PointsToRedeem / rates.PointsPerUnit * minorUnitsPerUnit
	}

	quote.PayableMinorUnits = subtotalMinorUnits - quote.DiscountMinorUnits
	if quote.PayableMinorUnits < rates.MinPayableMinorUnits {
		quote.PayableMinorUnits = rates.MinPayableMinorUnits
	}

	return quote
}

package reservation

import (
	"math"
	"time"

	"staylocal/internal/domain"
)

const (
	serviceFeeRate = 0.10
	taxRate        = 0.08
)

// Nights counts billable nights for a half-open [checkIn, checkOut) stay.
// Partial days round up, so any positive duration bills at least one night.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// Quote builds the pricing snapshot frozen onto the reservation. Service fee
// and taxes are each rounded half up to the nearest whole amount,
// independently of each other, before summing.
func Quote(perNight float64, nights int, currency string) domain.Pricing {
	subtotal := perNight * float64(nights)
	fee := math.Round(subtotal * serviceFeeRate)
	taxes := math.Round(subtotal * taxRate)

	return domain.Pricing{
		PerNight:   perNight,
		Nights:     nights,
		Subtotal:   round2(subtotal),
		ServiceFee: fee,
		Taxes:      taxes,
		Total:      round2(subtotal + fee + taxes),
		Currency:   currency,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds half away from zero to one decimal. Used for the property
// rating aggregate.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

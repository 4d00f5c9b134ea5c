// Package fare computes ticket prices from route distance, the
// train's per-kilometre rate and the travel class multiplier.  The
// result is snapshotted onto the booking at creation time; later rate
// changes never reprice an existing booking.
package fare

import (
	"errors"
	"math"
)

// ErrBadInput reports fare inputs that cannot produce a meaningful
// price: non-positive distance or rate, a non-positive multiplier, or
// a non-finite intermediate.  Catalog rows that trigger it are data
// integrity problems, not user errors.
var ErrBadInput = errors.New("fare: invalid pricing inputs")

// Calculate returns the fare in whole currency units:
// round(distanceKm * farePerKm * classMultiplier), half away from
// zero.
func Calculate(distanceKm uint32, farePerKm, classMultiplier float64) (int64, error) {
	if distanceKm == 0 {
		return 0, ErrBadInput
	}
	if !(farePerKm > 0) || !(classMultiplier > 0) {
		return 0, ErrBadInput
	}
	amount := float64(distanceKm) * farePerKm * classMultiplier
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrBadInput
	}
	return int64(math.Round(amount)), nil
}

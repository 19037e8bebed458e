package statemachine

import (
	"fmt"
	"time"

	"github.com/jatin-wig/Food-Delivery-Customer-Support/models"
)

// DeliveryWindowSeconds is the full delivery window from order placement
// to the order being considered delivered.
const DeliveryWindowSeconds = 600

// ETA display sentinels for terminal states, plus the display shown on a
// freshly placed order before the first derivation.
const (
	ETAInitial      = "25 mins"
	ETADelivered    = "Delivered"
	ETANotAvailable = "N/A"
)

// Phase boundaries in seconds since order creation.
const (
	preparingAfter      = 120
	outForDeliveryAfter = 300
)

// Derive computes the current status and ETA display of an order from its
// stored status, creation time and the wall clock. It is pure: repeated calls
// with the same inputs yield the same result, and the caller is responsible
// for persisting the returned pair.
func Derive(status models.OrderStatus, createdAt, now time.Time) (models.OrderStatus, string) {
	if status == models.StatusCancelled {
		return models.StatusCancelled, ETANotAvailable
	}

	// A missing creation timestamp counts as just placed.
	elapsed := 0.0
	if !createdAt.IsZero() {
		elapsed = now.Sub(createdAt).Seconds()
		if elapsed < 0 {
			elapsed = 0
		}
	}

	remaining := DeliveryWindowSeconds - int(elapsed)
	if remaining <= 0 {
		return models.StatusDelivered, ETADelivered
	}

	eta := fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)

	switch {
	case elapsed < preparingAfter:
		return models.StatusPlaced, eta
	case elapsed < outForDeliveryAfter:
		return models.StatusPreparing, eta
	default:
		return models.StatusOutForDelivery, eta
	}
}

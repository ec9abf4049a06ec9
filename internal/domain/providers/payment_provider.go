package providers

import (
	"context"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
)

// PaymentProvider defines the gateway operations the payment flow sequences:
// create an order, charge it with the chosen method, then verify the charge.
type PaymentProvider interface {
	// CreateOrder registers a gateway order for the booking amount
	CreateOrder(ctx context.Context, bookingID string, amount float64, currency string) (*entities.PaymentOrder, error)

	// Charge attempts to collect the order amount with the given method
	Charge(ctx context.Context, order *entities.PaymentOrder, method entities.PaymentMethod) (*entities.PaymentCharge, error)

	// Verify confirms the charge settled on the gateway side
	Verify(ctx context.Context, charge *entities.PaymentCharge) error
}

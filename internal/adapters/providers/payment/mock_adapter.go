package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/providers"
)

// MockAdapter provides a deterministic payment gateway for local development.
// Every order charges and verifies successfully.
type MockAdapter struct{}

// NewMockAdapter creates a mock payment provider.
func NewMockAdapter() providers.PaymentProvider {
	return &MockAdapter{}
}

// CreateOrder returns a mock gateway order.
func (m *MockAdapter) CreateOrder(ctx context.Context, bookingID string, amount float64, currency string) (*entities.PaymentOrder, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("order amount must be positive")
	}

	return &entities.PaymentOrder{
		ID:        fmt.Sprintf("order_mock_%d", time.Now().UnixNano()),
		BookingID: bookingID,
		Amount:    amount,
		Currency:  currency,
	}, nil
}

// Charge returns a captured mock charge.
func (m *MockAdapter) Charge(ctx context.Context, order *entities.PaymentOrder, method entities.PaymentMethod) (*entities.PaymentCharge, error) {
	if !entities.ValidPaymentMethod(method) {
		return nil, fmt.Errorf("unsupported payment method: %s", method)
	}

	return &entities.PaymentCharge{
		ID:      fmt.Sprintf("pay_mock_%d", time.Now().UnixNano()),
		OrderID: order.ID,
		Method:  method,
		Status:  "captured",
	}, nil
}

// Verify is a no-op for captured mock charges.
func (m *MockAdapter) Verify(ctx context.Context, charge *entities.PaymentCharge) error {
	if charge.Status != "captured" {
		return fmt.Errorf("charge %s not captured: %s", charge.ID, charge.Status)
	}
	return nil
}

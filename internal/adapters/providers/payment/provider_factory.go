package payment

import (
	"context"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/providers"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/config"
)

// NewPaymentProvider creates a resilient provider with optional mock fallback.
// Without gateway credentials the mock provider serves local development.
func NewPaymentProvider(cfg *config.PaymentConfig) providers.PaymentProvider {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return NewMockAdapter()
	}

	primary := NewRazorpayAdapter(cfg.KeyID, cfg.KeySecret)
	if !cfg.AllowMockOnFail {
		return primary
	}

	return &FallbackProvider{
		primary:  primary,
		fallback: NewMockAdapter(),
	}
}

// FallbackProvider wraps a primary gateway with a mock fallback for order
// creation. Charges and verification never fall back: a declined charge must
// surface as declined, not silently succeed.
type FallbackProvider struct {
	primary  providers.PaymentProvider
	fallback providers.PaymentProvider
}

func (p *FallbackProvider) CreateOrder(ctx context.Context, bookingID string, amount float64, currency string) (*entities.PaymentOrder, error) {
	order, err := p.primary.CreateOrder(ctx, bookingID, amount, currency)
	if err != nil && p.fallback != nil {
		return p.fallback.CreateOrder(ctx, bookingID, amount, currency)
	}
	return order, err
}

func (p *FallbackProvider) Charge(ctx context.Context, order *entities.PaymentOrder, method entities.PaymentMethod) (*entities.PaymentCharge, error) {
	return p.primary.Charge(ctx, order, method)
}

func (p *FallbackProvider) Verify(ctx context.Context, charge *entities.PaymentCharge) error {
	return p.primary.Verify(ctx, charge)
}

package entities

import "time"

// PaymentMethod identifies how a booking was paid
type PaymentMethod string

const (
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodNetBanking PaymentMethod = "netbanking"
	PaymentMethodWallet     PaymentMethod = "wallet"
)

// ValidPaymentMethod reports whether the method is one the gateway accepts
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodUPI, PaymentMethodCard, PaymentMethodNetBanking, PaymentMethodWallet:
		return true
	}
	return false
}

// PaymentState is the explicit payment flow state
type PaymentState string

const (
	PaymentStateMethods    PaymentState = "methods"
	PaymentStateProcessing PaymentState = "processing"
	PaymentStateSuccess    PaymentState = "success"
	PaymentStateFailed     PaymentState = "failed"
)

// PaymentOrder is the gateway order created before charging
type PaymentOrder struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

// PaymentCharge is the gateway's record of an attempted charge
type PaymentCharge struct {
	ID      string        `json:"id"`
	OrderID string        `json:"order_id"`
	Method  PaymentMethod `json:"method"`
	Status  string        `json:"status"`
}

// PaymentDetails is handed to the completion callback on success
type PaymentDetails struct {
	BookingID   string        `json:"booking_id"`
	OrderID     string        `json:"order_id"`
	ChargeID    string        `json:"charge_id"`
	Method      PaymentMethod `json:"method"`
	Amount      float64       `json:"amount"`
	Currency    string        `json:"currency"`
	CompletedAt time.Time     `json:"completed_at"`
}

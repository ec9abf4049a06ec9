package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
)

const (
	razorpayBaseURL  = "https://api.razorpay.com/v1"
	razorpayTimeout  = 10 * time.Second
	defaultCurrency  = "INR"
	statusCaptured   = "captured"
	statusAuthorized = "authorized"
	statusFailed     = "failed"
)

// RazorpayAdapter implements the PaymentProvider against the Razorpay REST
// API. Amounts are rupees on the domain side and paise on the wire.
type RazorpayAdapter struct {
	keyID      string
	keySecret  string
	httpClient *http.Client
	baseURL    string
}

// NewRazorpayAdapter creates a new Razorpay payment adapter.
func NewRazorpayAdapter(keyID, keySecret string) *RazorpayAdapter {
	return &RazorpayAdapter{
		keyID:      keyID,
		keySecret:  keySecret,
		httpClient: &http.Client{Timeout: razorpayTimeout},
		baseURL:    razorpayBaseURL,
	}
}

// WithBaseURL overrides the API base URL (used for tests).
func (r *RazorpayAdapter) WithBaseURL(baseURL string) *RazorpayAdapter {
	r.baseURL = strings.TrimRight(baseURL, "/")
	return r
}

type razorpayOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type razorpayPaymentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	OrderID  string `json:"order_id"`
	Method   string `json:"method"`
}

type razorpayPaymentResponse struct {
	ID               string `json:"id"`
	OrderID          string `json:"order_id"`
	Method           string `json:"method"`
	Status           string `json:"status"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// CreateOrder registers a gateway order for the booking amount.
func (r *RazorpayAdapter) CreateOrder(ctx context.Context, bookingID string, amount float64, currency string) (*entities.PaymentOrder, error) {
	if currency == "" {
		currency = defaultCurrency
	}

	reqBody := razorpayOrderRequest{
		Amount:   toPaise(amount),
		Currency: currency,
		Receipt:  bookingID,
	}

	var orderResp razorpayOrderResponse
	if err := r.post(ctx, "/orders", reqBody, &orderResp); err != nil {
		return nil, err
	}

	return &entities.PaymentOrder{
		ID:        orderResp.ID,
		BookingID: bookingID,
		Amount:    amount,
		Currency:  currency,
	}, nil
}

// Charge attempts to collect the order amount with the given method.
func (r *RazorpayAdapter) Charge(ctx context.Context, order *entities.PaymentOrder, method entities.PaymentMethod) (*entities.PaymentCharge, error) {
	if !entities.ValidPaymentMethod(method) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported payment method: %s", method))
	}

	reqBody := razorpayPaymentRequest{
		Amount:   toPaise(order.Amount),
		Currency: order.Currency,
		OrderID:  order.ID,
		Method:   string(method),
	}

	var paymentResp razorpayPaymentResponse
	if err := r.post(ctx, "/payments/create/json", reqBody, &paymentResp); err != nil {
		return nil, err
	}

	if paymentResp.Status == statusFailed {
		return nil, apperrors.NewGatewayError(fmt.Sprintf("charge declined: %s", paymentResp.ErrorDescription), nil)
	}

	return &entities.PaymentCharge{
		ID:      paymentResp.ID,
		OrderID: paymentResp.OrderID,
		Method:  method,
		Status:  paymentResp.Status,
	}, nil
}

// Verify confirms the charge settled on the gateway side by re-fetching the
// payment and checking its status.
func (r *RazorpayAdapter) Verify(ctx context.Context, charge *entities.PaymentCharge) error {
	var paymentResp razorpayPaymentResponse
	if err := r.get(ctx, "/payments/"+charge.ID, &paymentResp); err != nil {
		return err
	}

	switch paymentResp.Status {
	case statusCaptured, statusAuthorized:
		return nil
	default:
		return apperrors.NewGatewayError(fmt.Sprintf("payment %s not settled: %s", charge.ID, paymentResp.Status), nil)
	}
}

func (r *RazorpayAdapter) post(ctx context.Context, path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal gateway request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return apperrors.NewInternalError("failed to build gateway request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return r.do(req, out)
}

func (r *RazorpayAdapter) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to build gateway request", err)
	}

	return r.do(req, out)
}

func (r *RazorpayAdapter) do(req *http.Request, out interface{}) error {
	req.SetBasicAuth(r.keyID, r.keySecret)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return apperrors.NewGatewayError("gateway request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewGatewayError("failed to read gateway response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.NewGatewayError(fmt.Sprintf("gateway returned status %d: %s", resp.StatusCode, string(respBody)), nil)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return apperrors.NewGatewayError("failed to decode gateway response", err)
	}

	return nil
}

func toPaise(rupees float64) int64 {
	return int64(math.Round(rupees * 100))
}

package payment

import (
	"errors"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
)

// ErrNotConfigured is returned by every call when no Razorpay keys are set.
var ErrNotConfigured = errors.New("payment gateway is not configured")

// Gateway is the payment provider surface used by the HTTP layer. Results
// are the provider's entities, trimmed to the fields clients rely on.
type Gateway interface {
	KeyID() string
	CreateOrder(amount int64, currency, receipt string, notes map[string]string) (map[string]interface{}, error)
	FetchOrder(orderID string) (map[string]interface{}, error)
	FetchPayment(paymentID string) (map[string]interface{}, error)
	Capture(paymentID string, amount int64, currency string) (map[string]interface{}, error)
	Refund(paymentID string, amount int64, notes map[string]string) (map[string]interface{}, error)
}

// method sets of the SDK's resources.Order and resources.Payment
type orderAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	Fetch(orderID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type paymentAPI interface {
	Fetch(paymentID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	Capture(paymentID string, amount int, data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	Refund(paymentID string, amount int, data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Razorpay implements Gateway with razorpay-go. The SDK takes no context,
// so calls are bounded only by its own HTTP timeout.
type Razorpay struct {
	keyID    string
	orders   orderAPI
	payments paymentAPI
	now      func() time.Time
}

func NewRazorpay(keyID, keySecret string) *Razorpay {
	client := razorpay.NewClient(keyID, keySecret)
	return &Razorpay{
		keyID:    keyID,
		orders:   client.Order,
		payments: client.Payment,
		now:      time.Now,
	}
}

func (g *Razorpay) KeyID() string {
	return g.keyID
}

func (g *Razorpay) CreateOrder(amount int64, currency, receipt string, notes map[string]string) (map[string]interface{}, error) {
	if receipt == "" {
		receipt = fmt.Sprintf("receipt_%d", g.now().UnixMilli())
	}
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
		"notes":    stringMap(notes),
	}
	order, err := g.orders.Create(data, nil)
	if err != nil {
		return nil, err
	}
	return pick(order, "id", "entity", "amount", "currency", "receipt", "status", "created_at"), nil
}

func (g *Razorpay) FetchOrder(orderID string) (map[string]interface{}, error) {
	order, err := g.orders.Fetch(orderID, nil, nil)
	if err != nil {
		return nil, err
	}
	return pick(order, "id", "entity", "amount", "currency", "receipt", "status", "attempts", "created_at"), nil
}

func (g *Razorpay) FetchPayment(paymentID string) (map[string]interface{}, error) {
	payment, err := g.payments.Fetch(paymentID, nil, nil)
	if err != nil {
		return nil, err
	}
	return pick(payment, "id", "entity", "amount", "currency", "status", "order_id", "method", "email", "contact", "created_at"), nil
}

func (g *Razorpay) Capture(paymentID string, amount int64, currency string) (map[string]interface{}, error) {
	payment, err := g.payments.Capture(paymentID, int(amount), map[string]interface{}{"currency": currency}, nil)
	if err != nil {
		return nil, err
	}
	return pick(payment, "id", "amount", "currency", "status"), nil
}

// Refund refunds amount, or the full captured amount when amount is 0.
func (g *Razorpay) Refund(paymentID string, amount int64, notes map[string]string) (map[string]interface{}, error) {
	if amount == 0 {
		payment, err := g.payments.Fetch(paymentID, nil, nil)
		if err != nil {
			return nil, err
		}
		full, ok := payment["amount"].(float64)
		if !ok {
			return nil, fmt.Errorf("payment %s has no amount", paymentID)
		}
		amount = int64(full)
	}

	data := map[string]interface{}{}
	if len(notes) > 0 {
		data["notes"] = stringMap(notes)
	}
	refund, err := g.payments.Refund(paymentID, int(amount), data, nil)
	if err != nil {
		return nil, err
	}
	return pick(refund, "id", "entity", "amount", "currency", "payment_id", "status", "created_at"), nil
}

// Unconfigured stands in when RAZORPAY_KEY_ID/SECRET are unset.
type Unconfigured struct{}

func (Unconfigured) KeyID() string { return "" }

func (Unconfigured) CreateOrder(int64, string, string, map[string]string) (map[string]interface{}, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) FetchOrder(string) (map[string]interface{}, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) FetchPayment(string) (map[string]interface{}, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) Capture(string, int64, string) (map[string]interface{}, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) Refund(string, int64, map[string]string) (map[string]interface{}, error) {
	return nil, ErrNotConfigured
}

func pick(src map[string]interface{}, keys ...string) map[string]interface{} {
	out := make(map[string]interface{}, len(keys))
	for _, k := range keys {
		if v, ok := src[k]; ok {
			out[k] = v
		}
	}
	return out
}

func stringMap(m map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

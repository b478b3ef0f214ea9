package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log"

	"marketplace-orders/internal/domain"
	orderrepo "marketplace-orders/internal/repository/order"
)

var (
	// ErrBadSignature is returned when the payload signature does not
	// verify. No state is touched and no order existence is revealed.
	ErrBadSignature = errors.New("bad signature")
	// ErrInvalidPayload is returned for a verified but unparseable event.
	ErrInvalidPayload = errors.New("invalid payload")
)

const (
	eventPaymentSucceeded = "payment_succeeded"
	eventPaymentFailed    = "payment_failed"
)

// Event is the gateway's callback payload. PaymentID is the gateway-assigned
// identifier and the idempotency key for redeliveries.
type Event struct {
	Type        string `json:"type"`
	PaymentID   string `json:"payment_id"`
	OrderID     string `json:"order_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency,omitempty"`
}

// Result tells the webhook handler what to acknowledge.
type Result struct {
	// Applied is true when the order's payment status changed.
	Applied bool
	// Duplicate marks a redelivered event; acknowledged, nothing done.
	Duplicate bool
	// Ignored marks an unknown event type; acknowledged for forward
	// compatibility.
	Ignored bool
}

// Listener maps signed gateway callbacks onto order payment status.
type Listener struct {
	secret []byte
	orders ordersRepo
	logger *log.Logger
}

type ordersRepo interface {
	ApplyGatewayPayment(ctx context.Context, in orderrepo.GatewayPaymentInput) (orderrepo.GatewayPaymentResult, error)
}

func NewListener(secret string, orders orderrepo.Repository, logger *log.Logger) *Listener {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Listener{secret: []byte(secret), orders: orders, logger: logger}
}

// HandleEvent verifies the signature over the raw payload, then applies the
// event. Redelivery of an already-applied payment id is a success, not an
// error, so the gateway's retry policy stays simple.
func (l *Listener) HandleEvent(ctx context.Context, body []byte, signature string) (Result, error) {
	if !l.verify(body, signature) {
		return Result{}, ErrBadSignature
	}

	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return Result{}, ErrInvalidPayload
	}

	switch ev.Type {
	case eventPaymentSucceeded, eventPaymentFailed:
	default:
		l.logger.Printf("payment listener: ignoring event type=%q", ev.Type)
		return Result{Ignored: true}, nil
	}

	if ev.PaymentID == "" || ev.OrderID == "" {
		return Result{}, ErrInvalidPayload
	}

	res, err := l.orders.ApplyGatewayPayment(ctx, orderrepo.GatewayPaymentInput{
		OrderID:          ev.OrderID,
		GatewayPaymentID: ev.PaymentID,
		AmountCents:      ev.AmountCents,
		Succeeded:        ev.Type == eventPaymentSucceeded,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Result{}, domain.ErrNotFound
		}
		return Result{}, err
	}

	if res.Duplicate {
		l.logger.Printf("payment listener: duplicate event payment_id=%s", ev.PaymentID)
		return Result{Duplicate: true}, nil
	}
	if !res.Applied {
		// Payment already settled through another path (e.g. COD delivery).
		// The event is recorded for audit and acknowledged.
		l.logger.Printf("payment listener: no-op event payment_id=%s order=%s", ev.PaymentID, ev.OrderID)
		return Result{}, nil
	}

	l.logger.Printf("payment listener: applied type=%s payment_id=%s order=%s amount=%d",
		ev.Type, ev.PaymentID, ev.OrderID, ev.AmountCents)
	return Result{Applied: true}, nil
}

func (l *Listener) verify(body []byte, signature string) bool {
	sig, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, l.secret)
	mac.Write(body)
	return hmac.Equal(sig, mac.Sum(nil))
}

// Sign computes the hex signature the gateway is expected to send. Exported
// for the seed tool and tests that emit synthetic events.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

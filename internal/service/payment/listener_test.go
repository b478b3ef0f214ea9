package payment

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"marketplace-orders/internal/domain"
	orderrepo "marketplace-orders/internal/repository/order"
)

type stubOrders struct {
	result orderrepo.GatewayPaymentResult
	err    error
	calls  int
	last   orderrepo.GatewayPaymentInput
}

func (s *stubOrders) ApplyGatewayPayment(_ context.Context, in orderrepo.GatewayPaymentInput) (orderrepo.GatewayPaymentResult, error) {
	s.calls++
	s.last = in
	return s.result, s.err
}

func newTestListener(secret string, orders *stubOrders) *Listener {
	return &Listener{secret: []byte(secret), orders: orders, logger: log.New(io.Discard, "", 0)}
}

func TestHandleEventApplied(t *testing.T) {
	orders := &stubOrders{result: orderrepo.GatewayPaymentResult{Applied: true}}
	l := newTestListener("secret", orders)

	body := []byte(`{"type":"payment_succeeded","payment_id":"pay_1","order_id":"o1","amount_cents":5000,"currency":"USD"}`)
	res, err := l.HandleEvent(context.Background(), body, Sign("secret", body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Applied || res.Duplicate || res.Ignored {
		t.Fatalf("unexpected result: %+v", res)
	}
	if orders.last.OrderID != "o1" || orders.last.GatewayPaymentID != "pay_1" || orders.last.AmountCents != 5000 || !orders.last.Succeeded {
		t.Fatalf("unexpected input: %+v", orders.last)
	}
}

func TestHandleEventFailedPayment(t *testing.T) {
	orders := &stubOrders{result: orderrepo.GatewayPaymentResult{Applied: true}}
	l := newTestListener("secret", orders)

	body := []byte(`{"type":"payment_failed","payment_id":"pay_2","order_id":"o1","amount_cents":5000}`)
	if _, err := l.HandleEvent(context.Background(), body, Sign("secret", body)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders.last.Succeeded {
		t.Fatalf("expected failed event to carry Succeeded=false")
	}
}

func TestHandleEventBadSignature(t *testing.T) {
	orders := &stubOrders{}
	l := newTestListener("secret", orders)

	body := []byte(`{"type":"payment_succeeded","payment_id":"pay_1","order_id":"o1"}`)
	_, err := l.HandleEvent(context.Background(), body, Sign("other-secret", body))
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected bad signature, got %v", err)
	}
	if orders.calls != 0 {
		t.Fatalf("expected no repo call on bad signature")
	}

	_, err = l.HandleEvent(context.Background(), body, "not-hex")
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected bad signature for malformed header, got %v", err)
	}
}

func TestHandleEventTamperedBody(t *testing.T) {
	orders := &stubOrders{}
	l := newTestListener("secret", orders)

	body := []byte(`{"type":"payment_succeeded","payment_id":"pay_1","order_id":"o1","amount_cents":5000}`)
	sig := Sign("secret", body)
	tampered := []byte(`{"type":"payment_succeeded","payment_id":"pay_1","order_id":"o1","amount_cents":1}`)
	if _, err := l.HandleEvent(context.Background(), tampered, sig); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected bad signature, got %v", err)
	}
}

func TestHandleEventDuplicate(t *testing.T) {
	orders := &stubOrders{result: orderrepo.GatewayPaymentResult{Duplicate: true}}
	l := newTestListener("secret", orders)

	body := []byte(`{"type":"payment_succeeded","payment_id":"pay_1","order_id":"o1"}`)
	res, err := l.HandleEvent(context.Background(), body, Sign("secret", body))
	if err != nil {
		t.Fatalf("duplicate delivery must ack, got %v", err)
	}
	if !res.Duplicate || res.Applied {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestHandleEventUnknownTypeIgnored(t *testing.T) {
	orders := &stubOrders{}
	l := newTestListener("secret", orders)

	body := []byte(`{"type":"payout_created","payment_id":"pay_1","order_id":"o1"}`)
	res, err := l.HandleEvent(context.Background(), body, Sign("secret", body))
	if err != nil {
		t.Fatalf("unknown type must ack, got %v", err)
	}
	if !res.Ignored {
		t.Fatalf("expected Ignored, got %+v", res)
	}
	if orders.calls != 0 {
		t.Fatalf("expected no repo call for ignored event")
	}
}

func TestHandleEventInvalidPayload(t *testing.T) {
	orders := &stubOrders{}
	l := newTestListener("secret", orders)

	body := []byte(`{"type":`)
	if _, err := l.HandleEvent(context.Background(), body, Sign("secret", body)); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected invalid payload for bad json, got %v", err)
	}

	body = []byte(`{"type":"payment_succeeded","order_id":"o1"}`)
	if _, err := l.HandleEvent(context.Background(), body, Sign("secret", body)); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected invalid payload for missing payment id, got %v", err)
	}
}

func TestHandleEventUnknownOrder(t *testing.T) {
	orders := &stubOrders{err: domain.ErrNotFound}
	l := newTestListener("secret", orders)

	body := []byte(`{"type":"payment_succeeded","payment_id":"pay_1","order_id":"missing"}`)
	_, err := l.HandleEvent(context.Background(), body, Sign("secret", body))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestHandleEventSettledElsewhere(t *testing.T) {
	orders := &stubOrders{result: orderrepo.GatewayPaymentResult{}}
	l := newTestListener("secret", orders)

	body := []byte(`{"type":"payment_succeeded","payment_id":"pay_1","order_id":"o1"}`)
	res, err := l.HandleEvent(context.Background(), body, Sign("secret", body))
	if err != nil {
		t.Fatalf("settled order must still ack, got %v", err)
	}
	if res.Applied || res.Duplicate || res.Ignored {
		t.Fatalf("expected no-op ack, got %+v", res)
	}
}

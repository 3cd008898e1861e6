package orderbook

import (
	"errors"
	"testing"
	"time"
)

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("expected error %v, got %v", target, err)
	}
}

func assertEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func assertFloat(t *testing.T, expected, actual float64, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %.4f, got %.4f", msg, expected, actual)
	}
}

func assertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Errorf("%s: expected true, got false", msg)
	}
}

func assertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	if condition {
		t.Errorf("%s: expected false, got true", msg)
	}
}

func fixedClock() time.Time {
	return time.UnixMilli(1_625_158_800_000)
}

// recorder collects every trade emitted to the sink.
type recorder struct {
	trades []TradeEvent
}

func (r *recorder) Record(t TradeEvent) { r.trades = append(r.trades, t) }

func newTestBook() (*OrderBook, *recorder) {
	rec := &recorder{}
	return New(WithTradeSink(rec), WithClock(fixedClock)), rec
}

func mustAdd(t *testing.T, ob *OrderBook, o Order) []TradeEvent {
	t.Helper()
	trades, err := ob.AddOrder(o)
	assertNoError(t, err)
	return trades
}

func buy(id int64, price float64, qty, ts int64) Order {
	return NewLimitOrder(id, Buy, price, qty, ts)
}

func sell(id int64, price float64, qty, ts int64) Order {
	return NewLimitOrder(id, Sell, price, qty, ts)
}

package engine

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/moura95/hft-simulator/internal/orderbook"
	"github.com/moura95/hft-simulator/pkg/logger"
)

// =============================================================================
// HELPERS
// =============================================================================

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
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
		t.Errorf("%s: expected true", msg)
	}
}

func assertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	if condition {
		t.Errorf("%s: expected false", msg)
	}
}

type recorder struct {
	trades []orderbook.TradeEvent
}

func (r *recorder) Record(t orderbook.TradeEvent) { r.trades = append(r.trades, t) }

func setupEngine(sinks ...orderbook.TradeSink) *Engine {
	return New(Options{
		Sinks: sinks,
		Clock: func() time.Time { return time.UnixMilli(1_000) },
		Log:   logger.New(io.Discard, logger.ERROR),
	})
}

func limit(id int64, side orderbook.Side, price float64, qty int64) orderbook.Order {
	return orderbook.NewLimitOrder(id, side, price, qty, id)
}

// =============================================================================
// ENGINE BASIC TESTS
// =============================================================================

func TestNew(t *testing.T) {
	e := setupEngine()
	if e == nil {
		t.Fatal("New returned nil")
	}
	if e.book == nil || e.account == nil {
		t.Fatal("book and account should be initialized")
	}

	_, traded := e.LastTradePrice()
	assertFalse(t, traded, "No trades yet")
	assertTrue(t, e.Position(nil).IsFlat(), "Position starts flat")
}

// =============================================================================
// PROCESS TESTS
// =============================================================================

func TestEngine_Process_CrossesAndUpdatesPosition(t *testing.T) {
	rec := &recorder{}
	e := setupEngine(rec)

	trades, err := e.Process(limit(1, orderbook.Sell, 100, 10))
	assertNoError(t, err)
	assertEqual(t, 0, len(trades), "Resting sell should not trade")

	trades, err = e.Process(limit(2, orderbook.Buy, 100, 4))
	assertNoError(t, err)
	assertEqual(t, 1, len(trades), "Crossing buy should trade once")
	assertEqual(t, int64(4), trades[0].Quantity, "Fill quantity")
	assertEqual(t, orderbook.Buy, trades[0].AggressorSide, "Aggressor")

	assertEqual(t, 1, len(rec.trades), "Sink should see the trade")

	pos := e.Position(nil)
	assertEqual(t, int64(4), pos.NetQuantity, "Net position")
	assertFloat(t, 100, pos.AveragePrice, "Average price")

	price, traded := e.LastTradePrice()
	assertTrue(t, traded, "Has traded")
	assertFloat(t, 100, price, "Last trade price")

	snap := e.Book()
	assertEqual(t, 0, len(snap.Buys), "Buy side empty")
	assertEqual(t, 1, len(snap.Sells), "One sell rests")
	assertEqual(t, int64(6), snap.Sells[0].Quantity, "Sell remainder")
	if snap.BestBid != nil {
		t.Errorf("BestBid should be nil, got %v", *snap.BestBid)
	}
	assertFloat(t, 100, *snap.BestAsk, "BestAsk")
}

func TestEngine_Process_ActivatesStops(t *testing.T) {
	e := setupEngine()

	_, err := e.Process(orderbook.NewStopOrder(1, orderbook.Buy, 101, 3, 1))
	assertNoError(t, err)
	assertEqual(t, 1, len(e.Book().Stops), "Stop staged")

	trades, err := e.Process(limit(2, orderbook.Sell, 100.5, 5))
	assertNoError(t, err)
	assertEqual(t, 1, len(trades), "Stop should fire against the new ask")
	assertFloat(t, 100.5, trades[0].Price, "Sweep price")
	assertEqual(t, 0, len(e.Book().Stops), "Stop consumed")
}

func TestEngine_Process_RejectsInvalid(t *testing.T) {
	e := setupEngine()

	_, err := e.Process(limit(1, orderbook.Buy, 100, 0))
	if !errors.Is(err, orderbook.ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}

	_, err = e.Process(limit(2, orderbook.Buy, 100, 1))
	assertNoError(t, err)
	_, err = e.Process(limit(2, orderbook.Buy, 99, 1))
	if !errors.Is(err, orderbook.ErrDuplicateOrderID) {
		t.Fatalf("expected ErrDuplicateOrderID, got %v", err)
	}

	stats := e.Stats()
	assertEqual(t, int64(1), stats.OrdersAccepted, "Accepted")
	assertEqual(t, int64(2), stats.OrdersRejected, "Rejected")
}

func TestEngine_MarketRemainderIsCounted(t *testing.T) {
	e := setupEngine()

	_, err := e.AddOrder(limit(1, orderbook.Sell, 100, 3))
	assertNoError(t, err)

	trades, err := e.AddOrder(orderbook.NewMarketOrder(2, orderbook.Buy, 10, 2))
	assertNoError(t, err)
	assertEqual(t, 1, len(trades), "Market sweep trades")

	stats := e.Stats()
	assertEqual(t, int64(7), stats.DroppedQuantity, "Dropped remainder")
	assertEqual(t, int64(3), stats.Volume, "Volume")
	assertEqual(t, int64(1), stats.Trades, "Trades")
}

// =============================================================================
// MATCH / CANCEL TESTS
// =============================================================================

func TestEngine_AddThenMatch(t *testing.T) {
	e := setupEngine()

	_, _ = e.AddOrder(limit(1, orderbook.Buy, 101, 5))
	_, _ = e.AddOrder(limit(2, orderbook.Sell, 100, 5))

	bid, hasBid, ask, hasAsk := e.Quote()
	assertTrue(t, hasBid && hasAsk, "Both sides quoted")
	assertTrue(t, bid >= ask, "Book crossed before matching")

	trades := e.MatchOrders()
	assertEqual(t, 1, len(trades), "One cross")
	assertFloat(t, 100, trades[0].Price, "Cross at sell price")
	assertEqual(t, orderbook.Sell, trades[0].AggressorSide, "Later arrival aggresses")

	// Aggressor sold 5: short at 100.
	pos := e.Position(nil)
	assertEqual(t, int64(-5), pos.NetQuantity, "Net position")
}

func TestEngine_CancelOrder(t *testing.T) {
	e := setupEngine()

	_, _ = e.AddOrder(limit(1, orderbook.Buy, 99, 5))
	_, _ = e.AddOrder(orderbook.NewStopOrder(2, orderbook.Sell, 95, 1, 2))

	stats := e.Stats()
	assertEqual(t, 1, stats.RestingOrders, "Resting before cancel")
	assertEqual(t, 1, stats.StagedStops, "Staged before cancel")

	assertTrue(t, e.CancelOrder(1), "Cancel resting order")
	assertTrue(t, e.CancelOrder(2), "Cancel staged stop")
	assertFalse(t, e.CancelOrder(1), "Second cancel")
	assertFalse(t, e.CancelOrder(42), "Unknown id")

	snap := e.Book()
	assertEqual(t, 0, len(snap.Buys), "No buys")
	assertEqual(t, 0, len(snap.Stops), "No stops")
	stats = e.Stats()
	assertEqual(t, int64(2), stats.OrdersCancelled, "Cancelled")
	assertEqual(t, 0, stats.RestingOrders, "Resting after cancel")
	assertEqual(t, 0, stats.StagedStops, "Staged after cancel")
}

func TestEngine_PositionMarksToMarket(t *testing.T) {
	e := setupEngine()

	_, _ = e.Process(limit(1, orderbook.Sell, 100, 10))
	_, _ = e.Process(limit(2, orderbook.Buy, 100, 10))

	mark := 102.0
	pos := e.Position(&mark)
	assertFloat(t, 20, pos.UnrealizedPnL, "Unrealized at 102")
}

// =============================================================================
// CONCURRENCY TESTS
// =============================================================================

func TestEngine_ConcurrentProcess(t *testing.T) {
	rec := &recorder{}
	e := setupEngine(rec)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				id := int64(g*1000 + i + 1)
				side := orderbook.Buy
				if i%2 == 1 {
					side = orderbook.Sell
				}
				_, _ = e.Process(limit(id, side, 100, 1))
			}
		}(g)
	}
	wg.Wait()

	stats := e.Stats()
	assertEqual(t, int64(400), stats.OrdersAccepted, "All orders accepted")
	assertEqual(t, int64(len(rec.trades)), stats.Trades, "Sink saw every trade")

	assertEqual(t, int64(200), stats.Trades, "Every buy meets a sell at the same price")

	snap := e.Book()
	assertEqual(t, 0, len(snap.Buys), "No buys left")
	assertEqual(t, 0, len(snap.Sells), "No sells left")
}

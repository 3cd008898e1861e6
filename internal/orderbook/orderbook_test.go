package orderbook

import (
	"reflect"
	"testing"
)

// =============================================================================
// CROSSING
// =============================================================================

func TestMatchOrders_FullFill(t *testing.T) {
	ob, rec := newTestBook()
	mustAdd(t, ob, buy(1, 101.0, 10, 1))
	mustAdd(t, ob, sell(2, 100.0, 10, 2))

	trades := ob.MatchOrders()

	assertEqual(t, 1, len(trades), "trade count")
	assertFloat(t, 100.0, trades[0].Price, "Price")
	assertEqual(t, int64(10), trades[0].Quantity, "Quantity")
	assertEqual(t, int64(1), trades[0].BuyOrderID, "BuyOrderID")
	assertEqual(t, int64(2), trades[0].SellOrderID, "SellOrderID")
	assertEqual(t, 0, len(ob.BuyOrders()), "buy book")
	assertEqual(t, 0, len(ob.SellOrders()), "sell book")
	assertEqual(t, 1, len(rec.trades), "sink should see the trade")
	assertEqual(t, trades[0], rec.trades[0], "returned and emitted trade")
}

func TestMatchOrders_PartialFill(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, buy(1, 101.0, 5, 1))
	mustAdd(t, ob, sell(2, 100.0, 10, 2))

	trades := ob.MatchOrders()

	assertEqual(t, 1, len(trades), "trade count")
	assertFloat(t, 100.0, trades[0].Price, "Price")
	assertEqual(t, int64(5), trades[0].Quantity, "Quantity")
	assertEqual(t, 0, len(ob.BuyOrders()), "buy book")

	sells := ob.SellOrders()
	assertEqual(t, 1, len(sells), "sell book")
	assertEqual(t, int64(2), sells[0].ID, "remaining sell id")
	assertEqual(t, int64(5), sells[0].Quantity, "remaining sell quantity")
}

func TestMatchOrders_NoCross(t *testing.T) {
	ob, rec := newTestBook()
	mustAdd(t, ob, buy(1, 99.0, 10, 1))
	mustAdd(t, ob, sell(2, 100.0, 10, 2))

	trades := ob.MatchOrders()

	assertEqual(t, 0, len(trades), "trade count")
	assertEqual(t, 0, len(rec.trades), "sink trades")
	assertEqual(t, buy(1, 99.0, 10, 1), ob.BuyOrders()[0], "buy unchanged")
	assertEqual(t, sell(2, 100.0, 10, 2), ob.SellOrders()[0], "sell unchanged")
}

func TestMatchOrders_EmptyBook(t *testing.T) {
	ob, _ := newTestBook()

	trades := ob.MatchOrders()

	assertEqual(t, 0, len(trades), "trade count")
	assertEqual(t, 0, len(ob.BuyOrders()), "buy book")
	assertEqual(t, 0, len(ob.SellOrders()), "sell book")
}

func TestMatchOrders_ExecutesAtSellPrice(t *testing.T) {
	ob, _ := newTestBook()
	// sell rests first, buy crosses later: the sell price still applies
	mustAdd(t, ob, sell(1, 100.0, 10, 1))
	mustAdd(t, ob, buy(2, 105.0, 10, 2))

	trades := ob.MatchOrders()

	assertFloat(t, 100.0, trades[0].Price, "Price")
	assertEqual(t, Buy, trades[0].AggressorSide, "later arrival is the aggressor")
}

func TestMatchOrders_AggressorIsLaterArrival(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, buy(1, 101.0, 10, 5))
	mustAdd(t, ob, sell(2, 100.0, 10, 9))

	trades := ob.MatchOrders()
	assertEqual(t, Sell, trades[0].AggressorSide, "AggressorSide")
}

func TestMatchOrders_AggressorTieUsesAdmissionOrder(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, sell(1, 100.0, 10, 7))
	mustAdd(t, ob, buy(2, 100.0, 10, 7))

	trades := ob.MatchOrders()
	assertEqual(t, Buy, trades[0].AggressorSide, "AggressorSide")
}

func TestMatchOrders_PriceTimePriority(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, sell(1, 101.0, 5, 1))
	mustAdd(t, ob, sell(2, 100.0, 5, 2))
	mustAdd(t, ob, sell(3, 100.0, 5, 3))
	mustAdd(t, ob, buy(4, 102.0, 12, 4))

	trades := ob.MatchOrders()

	assertEqual(t, 3, len(trades), "trade count")
	assertEqual(t, int64(2), trades[0].SellOrderID, "best price, earliest arrival first")
	assertEqual(t, int64(3), trades[1].SellOrderID, "same price, second arrival")
	assertEqual(t, int64(1), trades[2].SellOrderID, "next price level")
	assertEqual(t, int64(2), trades[2].Quantity, "last fill is what remains of the buy")
	assertFloat(t, 101.0, trades[2].Price, "last fill price")

	sells := ob.SellOrders()
	assertEqual(t, 1, len(sells), "sell book")
	assertEqual(t, int64(3), sells[0].Quantity, "order 1 remaining")
}

func TestMatchOrders_Idempotent(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, buy(1, 101.0, 5, 1))
	mustAdd(t, ob, sell(2, 100.0, 10, 2))

	assertEqual(t, 1, len(ob.MatchOrders()), "first round")
	assertEqual(t, 0, len(ob.MatchOrders()), "second round")
}

func TestMatchOrders_TradeSequenceAndTimestamp(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, buy(1, 101.0, 5, 1))
	mustAdd(t, ob, buy(2, 101.0, 5, 2))
	mustAdd(t, ob, sell(3, 100.0, 10, 3))

	trades := ob.MatchOrders()
	assertEqual(t, uint64(1), trades[0].Seq, "first seq")
	assertEqual(t, uint64(2), trades[1].Seq, "second seq")
	assertEqual(t, fixedClock().UnixMilli(), trades[0].Timestamp, "Timestamp")
}

// =============================================================================
// MARKET ORDERS
// =============================================================================

func TestAddOrder_MarketSweepsAtRestingPrice(t *testing.T) {
	ob, rec := newTestBook()
	mustAdd(t, ob, sell(1, 100.0, 4, 1))
	mustAdd(t, ob, sell(2, 101.0, 4, 2))

	trades := mustAdd(t, ob, NewMarketOrder(3, Buy, 6, 3))

	assertEqual(t, 2, len(trades), "trade count")
	assertFloat(t, 100.0, trades[0].Price, "first fill price")
	assertFloat(t, 101.0, trades[1].Price, "second fill price")
	assertEqual(t, int64(4), trades[0].Quantity, "first fill qty")
	assertEqual(t, int64(2), trades[1].Quantity, "second fill qty")
	assertEqual(t, Buy, trades[1].AggressorSide, "AggressorSide")
	assertEqual(t, int64(3), trades[0].BuyOrderID, "BuyOrderID")
	assertEqual(t, 2, len(rec.trades), "sink trades")

	sells := ob.SellOrders()
	assertEqual(t, 1, len(sells), "sell book")
	assertEqual(t, int64(2), sells[0].Quantity, "order 2 remaining")
}

func TestAddOrder_MarketRemainderIsDropped(t *testing.T) {
	var droppedID, droppedQty int64
	ob := New(WithClock(fixedClock), WithRemainderPolicy(func(o Order, unfilled int64) {
		droppedID, droppedQty = o.ID, unfilled
	}))
	mustAdd(t, ob, buy(1, 99.0, 3, 1))

	trades := mustAdd(t, ob, NewMarketOrder(2, Sell, 10, 2))

	assertEqual(t, 1, len(trades), "trade count")
	assertEqual(t, Sell, trades[0].AggressorSide, "AggressorSide")
	assertEqual(t, int64(2), droppedID, "dropped order id")
	assertEqual(t, int64(7), droppedQty, "dropped quantity")
	assertEqual(t, 0, len(ob.BuyOrders()), "buy book")
	assertEqual(t, 0, len(ob.SellOrders()), "market order never rests")
}

func TestAddOrder_MarketOnEmptyBook(t *testing.T) {
	ob, _ := newTestBook()
	trades := mustAdd(t, ob, NewMarketOrder(1, Buy, 10, 1))

	assertEqual(t, 0, len(trades), "trade count")
	assertEqual(t, 0, len(ob.BuyOrders()), "market order never rests")
}

// =============================================================================
// ADMISSION
// =============================================================================

func TestAddOrder_RejectsMalformed(t *testing.T) {
	ob, _ := newTestBook()

	_, err := ob.AddOrder(buy(1, 0, 10, 1))
	assertErrorIs(t, err, ErrInvalidOrder)
	_, err = ob.AddOrder(buy(1, 100, 0, 1))
	assertErrorIs(t, err, ErrInvalidQuantity)

	assertEqual(t, 0, len(ob.BuyOrders()), "book unchanged")
}

func TestAddOrder_RejectsDuplicateID(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, buy(1, 100, 10, 1))
	mustAdd(t, ob, NewStopOrder(2, Sell, 90, 10, 2))

	_, err := ob.AddOrder(sell(1, 101, 10, 3))
	assertErrorIs(t, err, ErrDuplicateOrderID)
	_, err = ob.AddOrder(buy(2, 99, 10, 4))
	assertErrorIs(t, err, ErrDuplicateOrderID)

	assertEqual(t, 1, len(ob.BuyOrders()), "buy book")
	assertEqual(t, 0, len(ob.SellOrders()), "sell book")
}

func TestAddOrder_IDReusableAfterFill(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, buy(1, 100, 10, 1))
	mustAdd(t, ob, sell(2, 100, 10, 2))
	ob.MatchOrders()

	mustAdd(t, ob, buy(1, 100, 10, 3))
	assertEqual(t, 1, len(ob.BuyOrders()), "buy book")
}

func TestAddOrder_UnspecifiedTypeRestsAsLimit(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, Order{ID: 1, Side: Buy, Price: 100, Quantity: 10})

	orders := ob.BuyOrders()
	assertEqual(t, 1, len(orders), "buy book")
	assertEqual(t, OrderTypeLimit, orders[0].Type, "Type")
}

// =============================================================================
// CANCELLATION
// =============================================================================

func TestCancelOrder(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, buy(1, 100.0, 10, 1))

	assertTrue(t, ob.CancelOrder(1), "first cancel")
	assertFalse(t, ob.CancelOrder(1), "second cancel")
	assertEqual(t, 0, len(ob.BuyOrders()), "buy book")

	empty, _ := newTestBook()
	assertFalse(t, empty.CancelOrder(999), "cancel on empty book")
}

func TestCancelOrder_RoundTrip(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, buy(1, 100.0, 10, 1))
	mustAdd(t, ob, sell(2, 102.0, 10, 2))
	beforeBuys, beforeSells := ob.BuyOrders(), ob.SellOrders()

	mustAdd(t, ob, buy(3, 101.0, 4, 3))
	assertTrue(t, ob.CancelOrder(3), "cancel")

	assertTrue(t, reflect.DeepEqual(beforeBuys, ob.BuyOrders()), "buy book restored")
	assertTrue(t, reflect.DeepEqual(beforeSells, ob.SellOrders()), "sell book restored")
	bid, _ := ob.BestBid()
	assertFloat(t, 100.0, bid, "best bid skips the stale cache entry")
}

func TestCancelOrder_MiddleOfLevelKeepsFIFO(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, sell(1, 100.0, 1, 1))
	mustAdd(t, ob, sell(2, 100.0, 2, 2))
	mustAdd(t, ob, sell(3, 100.0, 3, 3))

	assertTrue(t, ob.CancelOrder(2), "cancel")

	sells := ob.SellOrders()
	assertEqual(t, 2, len(sells), "sell book")
	assertEqual(t, int64(1), sells[0].ID, "head")
	assertEqual(t, int64(3), sells[1].ID, "tail")

	depth := ob.Depth(Sell)
	assertEqual(t, int64(4), depth[0].TotalVolume, "level volume")
	assertEqual(t, 2, depth[0].OrderCount, "level order count")
}

func TestCancelOrder_LocatorsFollowFills(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, sell(1, 100.0, 2, 1))
	mustAdd(t, ob, sell(2, 100.0, 5, 2))
	mustAdd(t, ob, sell(3, 101.0, 5, 3))

	// Fills order 1 and part of order 2.
	mustAdd(t, ob, NewMarketOrder(4, Buy, 4, 4))
	assertEqual(t, 2, ob.OrderCount(), "resting after sweep")

	assertFalse(t, ob.CancelOrder(1), "filled order is gone")
	assertTrue(t, ob.CancelOrder(2), "partially filled order")
	assertTrue(t, ob.CancelOrder(3), "untouched order")
	assertEqual(t, 0, ob.OrderCount(), "resting after cancels")
	assertEqual(t, 0, len(ob.Depth(Sell)), "no sell levels left")
}

func TestCancelOrder_StaleBestPriceIsSkippedWhenMatching(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, buy(1, 105.0, 10, 1))
	mustAdd(t, ob, buy(2, 100.0, 10, 2))
	mustAdd(t, ob, sell(3, 101.0, 10, 3))
	assertTrue(t, ob.CancelOrder(1), "cancel")

	trades := ob.MatchOrders()
	assertEqual(t, 0, len(trades), "cancelled level must not cross")
}

// =============================================================================
// STOP ORDERS
// =============================================================================

func TestStopOrder_StagedUntilTriggered(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, sell(1, 102.0, 10, 1))
	mustAdd(t, ob, NewStopOrder(2, Buy, 101.0, 5, 2))

	assertEqual(t, 0, len(ob.CheckStopOrders()), "best sell above stop price")
	assertEqual(t, 1, len(ob.StagedStops()), "still staged")
	assertEqual(t, 0, len(ob.BuyOrders()), "stop never rests")

	mustAdd(t, ob, sell(3, 101.0, 3, 3))
	trades := ob.CheckStopOrders()

	assertEqual(t, 2, len(trades), "trade count")
	assertFloat(t, 101.0, trades[0].Price, "first fill at best sell")
	assertEqual(t, int64(3), trades[0].Quantity, "first fill qty")
	assertFloat(t, 102.0, trades[1].Price, "second fill")
	assertEqual(t, int64(2), trades[1].Quantity, "second fill qty")
	assertEqual(t, int64(2), trades[0].BuyOrderID, "activated stop keeps its id")
	assertEqual(t, Buy, trades[0].AggressorSide, "AggressorSide")
	assertEqual(t, 0, len(ob.StagedStops()), "activation removes the staged entry")
}

func TestStopOrder_SellTriggersAtOrAboveBestBid(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, buy(1, 95.0, 10, 1))
	mustAdd(t, ob, NewStopOrder(2, Sell, 95.0, 4, 2))

	trades := ob.CheckStopOrders()

	assertEqual(t, 1, len(trades), "trade count")
	assertEqual(t, int64(2), trades[0].SellOrderID, "SellOrderID")
	assertEqual(t, Sell, trades[0].AggressorSide, "AggressorSide")
	assertEqual(t, int64(6), ob.BuyOrders()[0].Quantity, "resting buy remaining")
}

func TestStopOrder_ActivationIsTerminalEvenUnfilled(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, sell(1, 100.0, 2, 1))
	mustAdd(t, ob, NewStopOrder(2, Buy, 100.0, 10, 2))

	trades := ob.CheckStopOrders()

	assertEqual(t, 1, len(trades), "trade count")
	assertEqual(t, 0, len(ob.StagedStops()), "stop consumed")
	assertEqual(t, 0, len(ob.BuyOrders()), "remainder dropped")
	assertEqual(t, 0, len(ob.CheckStopOrders()), "nothing left to activate")
}

func TestStopOrder_EmptyOppositeSideNeverTriggers(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, NewStopOrder(1, Buy, 1_000_000, 5, 1))

	assertEqual(t, 0, len(ob.CheckStopOrders()), "trade count")
	assertEqual(t, 1, len(ob.StagedStops()), "still staged")
}

func TestCancelStopOrder(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, NewStopOrder(1, Sell, 90.0, 5, 1))

	assertFalse(t, ob.CancelOrder(1), "staged stops are not resting orders")
	assertTrue(t, ob.CancelStopOrder(1), "cancel staged stop")
	assertFalse(t, ob.CancelStopOrder(1), "second cancel")
	assertEqual(t, 0, len(ob.StagedStops()), "staging empty")
}

// =============================================================================
// QUERIES
// =============================================================================

func TestSnapshots_AreCopies(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, buy(1, 100.0, 10, 1))

	orders := ob.BuyOrders()
	orders[0].Quantity = 1
	orders[0].Price = 1

	assertEqual(t, int64(10), ob.BuyOrders()[0].Quantity, "book quantity")
	assertFloat(t, 100.0, ob.BuyOrders()[0].Price, "book price")
}

func TestSnapshots_BestPriceFirst(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, buy(1, 98.0, 1, 1))
	mustAdd(t, ob, buy(2, 99.0, 1, 2))
	mustAdd(t, ob, buy(3, 99.0, 1, 3))
	mustAdd(t, ob, sell(4, 103.0, 1, 4))
	mustAdd(t, ob, sell(5, 101.0, 1, 5))

	ids := func(orders []Order) []int64 {
		out := make([]int64, len(orders))
		for i, o := range orders {
			out[i] = o.ID
		}
		return out
	}
	assertTrue(t, reflect.DeepEqual([]int64{2, 3, 1}, ids(ob.BuyOrders())), "buy order")
	assertTrue(t, reflect.DeepEqual([]int64{5, 4}, ids(ob.SellOrders())), "sell order")
	assertFloat(t, 2.0, ob.Spread(), "Spread")
}

func TestDepth(t *testing.T) {
	ob, _ := newTestBook()
	mustAdd(t, ob, buy(1, 99.0, 3, 1))
	mustAdd(t, ob, buy(2, 99.0, 4, 2))
	mustAdd(t, ob, buy(3, 98.0, 1, 3))

	depth := ob.Depth(Buy)
	assertEqual(t, 2, len(depth), "levels")
	assertEqual(t, Level{Price: 99.0, TotalVolume: 7, OrderCount: 2}, depth[0], "best level")
	assertEqual(t, Level{Price: 98.0, TotalVolume: 1, OrderCount: 1}, depth[1], "second level")
}

func TestBestPriceCache_Compacts(t *testing.T) {
	ob, _ := newTestBook()
	for i := int64(1); i <= 500; i++ {
		mustAdd(t, ob, buy(i, 100.0, 1, i))
		assertTrue(t, ob.CancelOrder(i), "cancel")
	}
	mustAdd(t, ob, buy(1000, 99.0, 1, 1000))

	assertTrue(t, ob.bidCache.len() <= 2*ob.bids.len()+65, "cache bounded after compaction")
	bid, ok := ob.BestBid()
	assertTrue(t, ok, "has bid")
	assertFloat(t, 99.0, bid, "best bid")
}

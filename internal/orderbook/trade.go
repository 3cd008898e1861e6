package orderbook

import "fmt"

// TradeEvent records one match. Seq numbers events per book starting at 1.
type TradeEvent struct {
	Seq           uint64
	BuyOrderID    int64
	SellOrderID   int64
	Price         float64
	Quantity      int64
	Timestamp     int64 // milliseconds since epoch, from the book clock
	AggressorSide Side
}

func (t TradeEvent) String() string {
	return fmt.Sprintf("[Trade #%d: %d @ %.2f | Buy:%d Sell:%d aggressor:%s]",
		t.Seq, t.Quantity, t.Price, t.BuyOrderID, t.SellOrderID, t.AggressorSide)
}

// TradeSink receives every TradeEvent synchronously, exactly once, in match order.
type TradeSink interface {
	Record(TradeEvent)
}

// SinkFunc adapts a plain function to TradeSink.
type SinkFunc func(TradeEvent)

func (f SinkFunc) Record(t TradeEvent) { f(t) }

// RemainderPolicy decides what happens to the part of a market order that
// found no liquidity. Market orders never rest, so a policy can only observe.
type RemainderPolicy func(order Order, unfilled int64)

// DropUnfilledRemainder silently discards the unfilled quantity.
func DropUnfilledRemainder(Order, int64) {}

package orderbook

import (
	"container/list"
	"fmt"
	"time"
)

// locator points at a resting order: its side, its price and its position
// token inside that price level.
type locator struct {
	side  Side
	price float64
	elem  *list.Element
}

// OrderBook is a single-instrument limit order book with price-time priority.
//
// The book is not safe for concurrent use. Callers serialize AddOrder,
// MatchOrders, CheckStopOrders and CancelOrder.
type OrderBook struct {
	bids *priceLevelIndex
	asks *priceLevelIndex

	bidCache *bestPriceCache
	askCache *bestPriceCache

	buyStops  stopStaging
	sellStops stopStaging

	orders map[int64]locator

	sink      TradeSink
	remainder RemainderPolicy
	now       func() time.Time

	admitted uint64
	tradeSeq uint64
}

type Option func(*OrderBook)

func WithTradeSink(sink TradeSink) Option {
	return func(ob *OrderBook) { ob.sink = sink }
}

// WithClock sets the clock used to timestamp trades.
func WithClock(now func() time.Time) Option {
	return func(ob *OrderBook) { ob.now = now }
}

func WithRemainderPolicy(p RemainderPolicy) Option {
	return func(ob *OrderBook) { ob.remainder = p }
}

func New(opts ...Option) *OrderBook {
	ob := &OrderBook{
		bids:      newPriceLevelIndex(Buy),
		asks:      newPriceLevelIndex(Sell),
		bidCache:  newBestPriceCache(Buy),
		askCache:  newBestPriceCache(Sell),
		orders:    make(map[int64]locator),
		remainder: DropUnfilledRemainder,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(ob)
	}
	return ob
}

// =============================================================================
// ADMISSION
// =============================================================================

// AddOrder admits an order. LIMIT orders rest, STOP orders are staged and
// MARKET orders sweep the opposite side at once; the trades of that sweep are
// returned. Malformed orders are rejected with ErrInvalidOrder and leave the
// book unchanged.
func (ob *OrderBook) AddOrder(order Order) ([]TradeEvent, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if ob.inUse(order.ID) {
		return nil, fmt.Errorf("%w: %w: %d", ErrInvalidOrder, ErrDuplicateOrderID, order.ID)
	}

	switch order.Type {
	case OrderTypeMarket:
		return ob.sweep(order), nil
	case OrderTypeStop:
		ob.stops(order.Side).add(order)
		return nil, nil
	default:
		order.Type = OrderTypeLimit
		ob.rest(order)
		return nil, nil
	}
}

func (ob *OrderBook) inUse(id int64) bool {
	if _, ok := ob.orders[id]; ok {
		return true
	}
	return ob.buyStops.contains(id) || ob.sellStops.contains(id)
}

func (ob *OrderBook) rest(order Order) {
	ob.admitted++
	level := ob.index(order.Side).getOrCreate(order.Price)
	elem := level.push(&resting{Order: order, admitted: ob.admitted})
	ob.orders[order.ID] = locator{side: order.Side, price: order.Price, elem: elem}

	cache := ob.cache(order.Side)
	cache.push(order.Price)
	cache.compact(ob.index(order.Side))
}

// =============================================================================
// MATCHING
// =============================================================================

// sweep fills an incoming market order against the opposite side, best price
// first, always at the resting order's price. Whatever cannot be filled goes
// to the remainder policy; market orders never rest.
func (ob *OrderBook) sweep(order Order) []TradeEvent {
	var trades []TradeEvent

	opposite := order.Side.Opposite()
	index, cache := ob.index(opposite), ob.cache(opposite)

	remaining := order.Quantity
	for remaining > 0 {
		price, ok := cache.best(index)
		if !ok {
			break
		}
		level, _ := index.get(price)
		head, elem := level.head()

		qty := min(remaining, head.Quantity)

		var trade TradeEvent
		if order.Side == Buy {
			trade = ob.emit(order.ID, head.ID, level.price, qty, order.Side)
		} else {
			trade = ob.emit(head.ID, order.ID, level.price, qty, order.Side)
		}
		trades = append(trades, trade)

		remaining -= qty
		ob.fillResting(level, head, elem, qty)
	}

	if remaining > 0 {
		ob.remainder(order, remaining)
	}
	return trades
}

// MatchOrders crosses resting buy and sell interest until the book is no
// longer crossed or one side is empty. Crosses execute at the sell price. It
// is a no-op on an empty or uncrossed book.
func (ob *OrderBook) MatchOrders() []TradeEvent {
	var trades []TradeEvent

	for ob.bids.len() > 0 && ob.asks.len() > 0 {
		bestBuy, ok := ob.bidCache.best(ob.bids)
		if !ok {
			break
		}
		bestSell, ok := ob.askCache.best(ob.asks)
		if !ok {
			break
		}
		if bestBuy < bestSell {
			break
		}

		buyLevel, _ := ob.bids.get(bestBuy)
		sellLevel, _ := ob.asks.get(bestSell)
		buy, buyElem := buyLevel.head()
		sell, sellElem := sellLevel.head()

		qty := min(buy.Quantity, sell.Quantity)
		trades = append(trades, ob.emit(buy.ID, sell.ID, bestSell, qty, aggressor(buy, sell)))

		ob.fillResting(buyLevel, buy, buyElem, qty)
		ob.fillResting(sellLevel, sell, sellElem, qty)
	}
	return trades
}

// aggressor is the side of the later arrival. Equal timestamps fall back to
// admission order.
func aggressor(buy, sell *resting) Side {
	switch {
	case buy.Timestamp > sell.Timestamp:
		return Buy
	case sell.Timestamp > buy.Timestamp:
		return Sell
	case buy.admitted > sell.admitted:
		return Buy
	default:
		return Sell
	}
}

func (ob *OrderBook) fillResting(level *priceLevel, o *resting, elem *list.Element, qty int64) {
	o.Quantity -= qty
	level.fill(qty)
	if o.Quantity == 0 {
		ob.unlink(o.ID, level, elem, o.Side)
	}
}

func (ob *OrderBook) emit(buyID, sellID int64, price float64, qty int64, side Side) TradeEvent {
	ob.tradeSeq++
	trade := TradeEvent{
		Seq:           ob.tradeSeq,
		BuyOrderID:    buyID,
		SellOrderID:   sellID,
		Price:         price,
		Quantity:      qty,
		Timestamp:     ob.now().UnixMilli(),
		AggressorSide: side,
	}
	if ob.sink != nil {
		ob.sink.Record(trade)
	}
	return trade
}

// =============================================================================
// STOP ORDERS
// =============================================================================

// CheckStopOrders converts every staged stop whose trigger is met into a
// market order and sweeps it. A buy stop triggers when the best sell is at or
// below its stop price, a sell stop when the best buy is at or above it. Each
// staged order is evaluated once per call.
func (ob *OrderBook) CheckStopOrders() []TradeEvent {
	trades := ob.activate(&ob.buyStops)
	return append(trades, ob.activate(&ob.sellStops)...)
}

func (ob *OrderBook) activate(staging *stopStaging) []TradeEvent {
	var trades []TradeEvent
	for i := 0; i < len(staging.orders); {
		if !ob.triggered(staging.orders[i]) {
			i++
			continue
		}
		stop := staging.take(i)
		market := NewMarketOrder(stop.ID, stop.Side, stop.Quantity, stop.Timestamp)
		trades = append(trades, ob.sweep(market)...)
	}
	return trades
}

func (ob *OrderBook) triggered(stop Order) bool {
	if stop.Side == Buy {
		bestSell, ok := ob.askCache.best(ob.asks)
		return ok && bestSell <= stop.StopPrice
	}
	bestBuy, ok := ob.bidCache.best(ob.bids)
	return ok && bestBuy >= stop.StopPrice
}

// =============================================================================
// CANCELLATION
// =============================================================================

// CancelOrder removes a resting order. It reports false when no order with
// that id rests in the book.
func (ob *OrderBook) CancelOrder(id int64) bool {
	loc, ok := ob.orders[id]
	if !ok {
		return false
	}
	// A locator always points into a level that is still indexed.
	level, _ := ob.index(loc.side).get(loc.price)
	ob.unlink(id, level, loc.elem, loc.side)
	return true
}

// CancelStopOrder withdraws a staged stop order that has not activated yet.
func (ob *OrderBook) CancelStopOrder(id int64) bool {
	return ob.buyStops.remove(id) || ob.sellStops.remove(id)
}

// unlink drops an order from its level and the locator. An emptied level is
// removed from the index at once; its cache entries are left to go stale.
func (ob *OrderBook) unlink(id int64, level *priceLevel, elem *list.Element, side Side) {
	level.remove(elem)
	if level.empty() {
		ob.index(side).delete(level.price)
	}
	delete(ob.orders, id)
}

// =============================================================================
// QUERIES
// =============================================================================

// BuyOrders returns copies of the resting buy orders, best price first and
// arrival order within a price.
func (ob *OrderBook) BuyOrders() []Order {
	return ob.snapshot(ob.bids)
}

// SellOrders returns copies of the resting sell orders, best price first and
// arrival order within a price.
func (ob *OrderBook) SellOrders() []Order {
	return ob.snapshot(ob.asks)
}

func (ob *OrderBook) snapshot(ix *priceLevelIndex) []Order {
	out := make([]Order, 0, len(ob.orders))
	ix.each(func(l *priceLevel) bool {
		for e := l.orders.Front(); e != nil; e = e.Next() {
			out = append(out, e.Value.(*resting).Order)
		}
		return true
	})
	return out
}

// StagedStops returns copies of the stop orders waiting for activation.
func (ob *OrderBook) StagedStops() []Order {
	return append(ob.buyStops.snapshot(), ob.sellStops.snapshot()...)
}

func (ob *OrderBook) BestBid() (float64, bool) {
	return ob.bidCache.best(ob.bids)
}

func (ob *OrderBook) BestAsk() (float64, bool) {
	return ob.askCache.best(ob.asks)
}

// Spread is best ask minus best bid, 0 when either side is empty.
func (ob *OrderBook) Spread() float64 {
	bid, okBid := ob.BestBid()
	ask, okAsk := ob.BestAsk()
	if !okBid || !okAsk {
		return 0
	}
	return ask - bid
}

// Depth lists the price levels of one side, best price first.
func (ob *OrderBook) Depth(side Side) []Level {
	var out []Level
	ob.index(side).each(func(l *priceLevel) bool {
		out = append(out, l.view())
		return true
	})
	return out
}

// OrderCount is the number of resting orders.
func (ob *OrderBook) OrderCount() int {
	return len(ob.orders)
}

func (ob *OrderBook) StagedStopCount() int {
	return len(ob.buyStops.orders) + len(ob.sellStops.orders)
}

func (ob *OrderBook) index(side Side) *priceLevelIndex {
	if side == Buy {
		return ob.bids
	}
	return ob.asks
}

func (ob *OrderBook) cache(side Side) *bestPriceCache {
	if side == Buy {
		return ob.bidCache
	}
	return ob.askCache
}

func (ob *OrderBook) stops(side Side) *stopStaging {
	if side == Buy {
		return &ob.buyStops
	}
	return &ob.sellStops
}

package engine

import (
	"sync"
	"time"

	"github.com/moura95/hft-simulator/internal/orderbook"
	"github.com/moura95/hft-simulator/internal/position"
	"github.com/moura95/hft-simulator/pkg/logger"
)

// =============================================================================
// OPTIONS
// =============================================================================

type Options struct {
	// Account receives every trade before the sinks do. A new account is
	// created when nil.
	Account *position.Account
	// Sinks receive every trade, in registration order.
	Sinks []orderbook.TradeSink
	Clock func() time.Time
	Log   *logger.Logger
}

type Stats struct {
	OrdersAccepted  int64
	OrdersRejected  int64
	OrdersCancelled int64
	Trades          int64
	Volume          int64
	DroppedQuantity int64

	// Book occupancy at the time of the call.
	RestingOrders int
	StagedStops   int
}

// BookSnapshot is a consistent copy of the book state.
type BookSnapshot struct {
	Buys     []orderbook.Order
	Sells    []orderbook.Order
	Stops    []orderbook.Order
	BidDepth []orderbook.Level
	AskDepth []orderbook.Level
	BestBid  *float64
	BestAsk  *float64
	Spread   float64
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine serializes every call into a single order book and keeps the
// position account in step with the trade stream. It is the one place that
// may be shared between goroutines.
type Engine struct {
	mu sync.Mutex

	book    *orderbook.OrderBook
	account *position.Account
	sinks   []orderbook.TradeSink
	log     *logger.Logger

	stats     Stats
	lastPrice float64
	hasTraded bool
}

func New(opts Options) *Engine {
	e := &Engine{
		account: opts.Account,
		sinks:   opts.Sinks,
		log:     opts.Log,
	}
	if e.account == nil {
		e.account = position.NewAccount()
	}
	if e.log == nil {
		e.log = logger.Named("engine")
	}

	bookOpts := []orderbook.Option{
		orderbook.WithTradeSink(orderbook.SinkFunc(e.onTrade)),
		orderbook.WithRemainderPolicy(e.onUnfilled),
	}
	if opts.Clock != nil {
		bookOpts = append(bookOpts, orderbook.WithClock(opts.Clock))
	}
	e.book = orderbook.New(bookOpts...)
	return e
}

// onTrade runs under e.mu: the book only emits from inside engine calls.
func (e *Engine) onTrade(t orderbook.TradeEvent) {
	e.account.Record(t)

	e.stats.Trades++
	e.stats.Volume += t.Quantity
	e.lastPrice = t.Price
	e.hasTraded = true

	for _, sink := range e.sinks {
		sink.Record(t)
	}
	e.log.Debugf("Trade %s", t)
}

func (e *Engine) onUnfilled(o orderbook.Order, unfilled int64) {
	e.stats.DroppedQuantity += unfilled
	e.log.Infof("Market order %d - dropped unfilled remainder: %d of %d", o.ID, unfilled, o.Quantity)
}

// =============================================================================
// ORDER OPERATIONS
// =============================================================================

// AddOrder admits one order without running a matching round.
func (e *Engine) AddOrder(order orderbook.Order) ([]orderbook.TradeEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.addOrder(order)
}

func (e *Engine) addOrder(order orderbook.Order) ([]orderbook.TradeEvent, error) {
	trades, err := e.book.AddOrder(order)
	if err != nil {
		e.stats.OrdersRejected++
		e.log.Warningf("Order %d rejected - %v", order.ID, err)
		return nil, err
	}
	e.stats.OrdersAccepted++
	return trades, nil
}

func (e *Engine) MatchOrders() []orderbook.TradeEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.book.MatchOrders()
}

func (e *Engine) CheckStopOrders() []orderbook.TradeEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.book.CheckStopOrders()
}

// Process runs one driver round for a single order: admit it, cross the
// book, then activate eligible stops.
func (e *Engine) Process(order orderbook.Order) ([]orderbook.TradeEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	trades, err := e.addOrder(order)
	if err != nil {
		return nil, err
	}
	trades = append(trades, e.book.MatchOrders()...)
	return append(trades, e.book.CheckStopOrders()...), nil
}

// CancelOrder withdraws a resting order, or a staged stop with that id.
func (e *Engine) CancelOrder(id int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.book.CancelOrder(id) && !e.book.CancelStopOrder(id) {
		return false
	}
	e.stats.OrdersCancelled++
	return true
}

// =============================================================================
// QUERIES
// =============================================================================

// Position returns the account snapshot, after marking it at mark if given.
func (e *Engine) Position(mark *float64) position.Position {
	e.mu.Lock()
	defer e.mu.Unlock()

	if mark != nil {
		e.account.MarkToMarket(*mark)
	}
	return e.account.Snapshot()
}

func (e *Engine) Book() BookSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := BookSnapshot{
		Buys:     e.book.BuyOrders(),
		Sells:    e.book.SellOrders(),
		Stops:    e.book.StagedStops(),
		BidDepth: e.book.Depth(orderbook.Buy),
		AskDepth: e.book.Depth(orderbook.Sell),
		Spread:   e.book.Spread(),
	}
	if bid, ok := e.book.BestBid(); ok {
		snap.BestBid = &bid
	}
	if ask, ok := e.book.BestAsk(); ok {
		snap.BestAsk = &ask
	}
	return snap
}

// Quote returns the best bid and ask and whether each side has interest.
func (e *Engine) Quote() (bid float64, hasBid bool, ask float64, hasAsk bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	bid, hasBid = e.book.BestBid()
	ask, hasAsk = e.book.BestAsk()
	return bid, hasBid, ask, hasAsk
}

func (e *Engine) LastTradePrice() (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.lastPrice, e.hasTraded
}

func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := e.stats
	stats.RestingOrders = e.book.OrderCount()
	stats.StagedStops = e.book.StagedStopCount()
	return stats
}

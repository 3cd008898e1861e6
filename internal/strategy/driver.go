package strategy

import (
	"context"
	"time"

	"github.com/moura95/hft-simulator/internal/orderbook"
	"github.com/moura95/hft-simulator/pkg/logger"
)

// Executor is the engine surface the driver needs. Process admits one order
// and runs the matching and stop checks that follow it.
type Executor interface {
	Process(orderbook.Order) ([]orderbook.TradeEvent, error)
	Quote() (bid float64, hasBid bool, ask float64, hasAsk bool)
	LastTradePrice() (float64, bool)
}

// Driver runs strategies against an executor at a fixed cadence.
type Driver struct {
	exec       Executor
	strategies []Strategy
	interval   time.Duration
	ids        *IDSource
	now        func() time.Time
	log        *logger.Logger
}

type DriverOption func(*Driver)

func WithIDSource(ids *IDSource) DriverOption {
	return func(d *Driver) { d.ids = ids }
}

func WithClock(now func() time.Time) DriverOption {
	return func(d *Driver) { d.now = now }
}

func WithLogger(l *logger.Logger) DriverOption {
	return func(d *Driver) { d.log = l }
}

func NewDriver(exec Executor, interval time.Duration, strategies []Strategy, opts ...DriverOption) *Driver {
	d := &Driver{
		exec:       exec,
		strategies: strategies,
		interval:   interval,
		ids:        NewIDSource(FirstOrderID),
		now:        time.Now,
		log:        logger.Named("strategy"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) state() MarketState {
	var s MarketState
	s.Bid, s.HasBid, s.Ask, s.HasAsk = d.exec.Quote()
	s.Last, s.HasLast = d.exec.LastTradePrice()
	return s
}

// Step runs one round: every strategy sees the market as it is when its turn
// comes and its orders are processed in order. It returns the trades produced.
func (d *Driver) Step() []orderbook.TradeEvent {
	var trades []orderbook.TradeEvent
	for _, s := range d.strategies {
		for _, order := range s.Orders(d.state(), d.ids, d.now().UnixMilli()) {
			t, err := d.exec.Process(order)
			if err != nil {
				d.log.Warningf("[%s] Order %d rejected - %v", s.Name(), order.ID, err)
				continue
			}
			d.log.Debugf("[%s] Submitted %s", s.Name(), order)
			trades = append(trades, t...)
		}
	}
	return trades
}

// Run steps on every tick until ctx is done.
func (d *Driver) Run(ctx context.Context) {
	if len(d.strategies) == 0 {
		return
	}
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.log.Infof("Strategies running every %v", d.interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Step()
		}
	}
}

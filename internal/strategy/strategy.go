package strategy

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync/atomic"

	"github.com/moura95/hft-simulator/internal/orderbook"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// FirstOrderID is where strategy order ids start, clear of replayed feeds.
const FirstOrderID = 10000

// MarketState is what a strategy sees at the start of a round.
type MarketState struct {
	Bid, Ask, Last          float64
	HasBid, HasAsk, HasLast bool
}

// Reference is the last trade price, falling back to the mid quote.
func (m MarketState) Reference() (float64, bool) {
	switch {
	case m.HasLast:
		return m.Last, true
	case m.HasBid && m.HasAsk:
		return (m.Bid + m.Ask) / 2, true
	default:
		return 0, false
	}
}

// Strategy proposes the orders for one round.
type Strategy interface {
	Name() string
	Orders(state MarketState, ids *IDSource, ts int64) []orderbook.Order
}

// IDSource hands out order ids shared by all strategies of a driver.
type IDSource struct {
	next atomic.Int64
}

func NewIDSource(first int64) *IDSource {
	s := &IDSource{}
	s.next.Store(first)
	return s
}

func (s *IDSource) Next() int64 {
	return s.next.Add(1) - 1
}

// Parse builds strategies from a comma separated list of names:
// market-maker, momentum, mean-reversion. "none" or "" yields none.
func Parse(names string, spread float64, rng *rand.Rand) ([]Strategy, error) {
	var out []Strategy
	for _, name := range strings.Split(names, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "", "none":
		case "market-maker":
			out = append(out, NewMarketMaker(spread, rng))
		case "momentum":
			out = append(out, NewMomentum(DefaultWindow, spread))
		case "mean-reversion":
			out = append(out, NewMeanReversion(DefaultWindow, spread))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
		}
	}
	return out, nil
}

package strategy

import (
	"github.com/moura95/hft-simulator/internal/orderbook"
	"github.com/moura95/hft-simulator/pkg/utils"
)

const DefaultWindow = 10

// priceWindow keeps the last n reference prices.
type priceWindow struct {
	prices []float64
	size   int
}

func (w *priceWindow) push(p float64) {
	w.prices = append(w.prices, p)
	if len(w.prices) > w.size {
		w.prices = w.prices[1:]
	}
}

func (w *priceWindow) full() bool { return len(w.prices) == w.size }

func (w *priceWindow) mean() float64 {
	var sum float64
	for _, p := range w.prices {
		sum += p
	}
	return sum / float64(len(w.prices))
}

func (w *priceWindow) first() float64 { return w.prices[0] }

// Momentum joins a move on its first pullback. After a rise beyond Threshold
// it stages a buy stop one threshold under the lower of the reference price
// and the best ask, which fires once offers come back down to it. A fall
// stages a sell stop one threshold over the higher of the reference and the
// best bid. Both rest staged when submitted.
type Momentum struct {
	Threshold float64
	Quantity  int64
	window    priceWindow
}

func NewMomentum(window int, threshold float64) *Momentum {
	return &Momentum{
		Threshold: threshold,
		Quantity:  1,
		window:    priceWindow{size: max(window, 2)},
	}
}

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) Orders(state MarketState, ids *IDSource, ts int64) []orderbook.Order {
	ref, ok := state.Reference()
	if !ok {
		return nil
	}
	m.window.push(ref)
	if !m.window.full() {
		return nil
	}

	move := ref - m.window.first()
	switch {
	case move > m.Threshold:
		base := ref
		if state.HasAsk {
			base = min(base, state.Ask)
		}
		stop := utils.RoundToTick(base-m.Threshold, TickSize)
		if stop <= 0 || (state.HasAsk && stop >= state.Ask) {
			return nil
		}
		return []orderbook.Order{orderbook.NewStopOrder(ids.Next(), orderbook.Buy, stop, m.Quantity, ts)}
	case move < -m.Threshold:
		base := ref
		if state.HasBid {
			base = max(base, state.Bid)
		}
		stop := utils.RoundToTick(base+m.Threshold, TickSize)
		if state.HasBid && stop <= state.Bid {
			return nil
		}
		return []orderbook.Order{orderbook.NewStopOrder(ids.Next(), orderbook.Sell, stop, m.Quantity, ts)}
	default:
		return nil
	}
}

// MeanReversion fades moves away from the window mean: above mean + Band it
// sells at market, below mean - Band it buys at market.
type MeanReversion struct {
	Band     float64
	Quantity int64
	window   priceWindow
}

func NewMeanReversion(window int, band float64) *MeanReversion {
	return &MeanReversion{
		Band:     band,
		Quantity: 1,
		window:   priceWindow{size: max(window, 2)},
	}
}

func (m *MeanReversion) Name() string { return "mean-reversion" }

func (m *MeanReversion) Orders(state MarketState, ids *IDSource, ts int64) []orderbook.Order {
	ref, ok := state.Reference()
	if !ok {
		return nil
	}
	m.window.push(ref)
	if !m.window.full() {
		return nil
	}

	mean := m.window.mean()
	switch {
	case ref > mean+m.Band && state.HasBid:
		return []orderbook.Order{orderbook.NewMarketOrder(ids.Next(), orderbook.Sell, m.Quantity, ts)}
	case ref < mean-m.Band && state.HasAsk:
		return []orderbook.Order{orderbook.NewMarketOrder(ids.Next(), orderbook.Buy, m.Quantity, ts)}
	default:
		return nil
	}
}

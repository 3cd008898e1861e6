package strategy

import (
	"math/rand/v2"

	"github.com/moura95/hft-simulator/internal/orderbook"
	"github.com/moura95/hft-simulator/pkg/utils"
)

const (
	TickSize = 0.01

	minMid      = 99.0
	maxMid      = 101.0
	minQuantity = 1
	maxQuantity = 10
)

// MarketMaker quotes both sides around a simulated mid price drawn uniformly
// from [99, 101]. Each round places one buy at mid - spread/2 and one sell at
// mid + spread/2, each for 1 to 10 units.
type MarketMaker struct {
	Spread float64
	rng    *rand.Rand
}

func NewMarketMaker(spread float64, rng *rand.Rand) *MarketMaker {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &MarketMaker{Spread: spread, rng: rng}
}

func (m *MarketMaker) Name() string { return "market-maker" }

func (m *MarketMaker) Orders(_ MarketState, ids *IDSource, ts int64) []orderbook.Order {
	mid := minMid + m.rng.Float64()*(maxMid-minMid)
	buyPrice := utils.RoundToTick(mid-m.Spread/2, TickSize)
	sellPrice := utils.RoundToTick(mid+m.Spread/2, TickSize)

	return []orderbook.Order{
		orderbook.NewLimitOrder(ids.Next(), orderbook.Buy, buyPrice, m.quantity(), ts),
		orderbook.NewLimitOrder(ids.Next(), orderbook.Sell, sellPrice, m.quantity(), ts),
	}
}

func (m *MarketMaker) quantity() int64 {
	return minQuantity + m.rng.Int64N(maxQuantity-minQuantity+1)
}

package position

import (
	"github.com/shopspring/decimal"

	"github.com/moura95/hft-simulator/internal/orderbook"
)

// Position is a point-in-time view of an Account.
type Position struct {
	NetQuantity   int64
	AveragePrice  float64
	RealizedPnL   float64
	UnrealizedPnL float64
}

func (p Position) IsFlat() bool { return p.NetQuantity == 0 }

// Account keeps a weighted-average-cost position built from fills.
// Positive net quantity is long, negative is short. The average price is
// meaningless while flat and is kept at zero then.
type Account struct {
	net        int64
	avg        decimal.Decimal
	realized   decimal.Decimal
	unrealized decimal.Decimal
}

func NewAccount() *Account {
	return &Account{}
}

// Update applies a fill of qty at price. A fill against the current
// position closes it first and books realized P&L; whatever is left opens or
// extends a position on the fill's side at a blended average price.
func (a *Account) Update(qty int64, price float64, isBuy bool) {
	if qty <= 0 {
		return
	}
	px := decimal.NewFromFloat(price)

	if isBuy {
		if a.net < 0 {
			cover := min(qty, -a.net)
			a.realized = a.realized.Add(a.avg.Sub(px).Mul(decimal.NewFromInt(cover)))
			a.net += cover
			qty -= cover
		}
		if qty > 0 {
			a.avg = blend(a.avg, a.net, px, qty)
			a.net += qty
		}
	} else {
		if a.net > 0 {
			closeQty := min(qty, a.net)
			a.realized = a.realized.Add(px.Sub(a.avg).Mul(decimal.NewFromInt(closeQty)))
			a.net -= closeQty
			qty -= closeQty
		}
		if qty > 0 {
			a.avg = blend(a.avg, -a.net, px, qty)
			a.net -= qty
		}
	}

	if a.net == 0 {
		a.avg = decimal.Zero
	}
}

// blend is the weighted average of held units at avg and qty new units at px.
func blend(avg decimal.Decimal, held int64, px decimal.Decimal, qty int64) decimal.Decimal {
	heldQty, addQty := decimal.NewFromInt(held), decimal.NewFromInt(qty)
	return avg.Mul(heldQty).Add(px.Mul(addQty)).Div(heldQty.Add(addQty))
}

// MarkToMarket revalues the open position against mark.
func (a *Account) MarkToMarket(mark float64) {
	px := decimal.NewFromFloat(mark)
	switch {
	case a.net > 0:
		a.unrealized = px.Sub(a.avg).Mul(decimal.NewFromInt(a.net))
	case a.net < 0:
		a.unrealized = a.avg.Sub(px).Mul(decimal.NewFromInt(-a.net))
	default:
		a.unrealized = decimal.Zero
	}
}

// Record applies a trade from the aggressor's point of view and marks the
// position at the trade price.
func (a *Account) Record(t orderbook.TradeEvent) {
	a.Update(t.Quantity, t.Price, t.AggressorSide == orderbook.Buy)
	a.MarkToMarket(t.Price)
}

func (a *Account) Snapshot() Position {
	return Position{
		NetQuantity:   a.net,
		AveragePrice:  a.avg.InexactFloat64(),
		RealizedPnL:   a.realized.InexactFloat64(),
		UnrealizedPnL: a.unrealized.InexactFloat64(),
	}
}

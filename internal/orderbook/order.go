package orderbook

import (
	"fmt"
	"math"
)

// Order is a single trading intent. Only Quantity changes while the order
// rests: it is the remaining amount and drops on every partial fill.
type Order struct {
	ID        int64
	Side      Side
	Type      OrderType
	Price     float64 // ignored for MARKET
	Quantity  int64
	StopPrice float64 // STOP only
	Timestamp int64   // arrival time, analytics and aggressor tie-break only
}

func NewLimitOrder(id int64, side Side, price float64, quantity, timestamp int64) Order {
	return Order{ID: id, Side: side, Type: OrderTypeLimit, Price: price, Quantity: quantity, Timestamp: timestamp}
}

func NewMarketOrder(id int64, side Side, quantity, timestamp int64) Order {
	return Order{ID: id, Side: side, Type: OrderTypeMarket, Quantity: quantity, Timestamp: timestamp}
}

func NewStopOrder(id int64, side Side, stopPrice float64, quantity, timestamp int64) Order {
	return Order{ID: id, Side: side, Type: OrderTypeStop, StopPrice: stopPrice, Quantity: quantity, Timestamp: timestamp}
}

// Validate checks the fields the book relies on. An unspecified type is
// treated as LIMIT.
func (o Order) Validate() error {
	if !o.Side.IsValid() {
		return fmt.Errorf("%w: %w", ErrInvalidOrder, ErrInvalidSide)
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidOrder, ErrInvalidQuantity)
	}

	switch o.Type {
	case OrderTypeLimit, "":
		if !isPositiveFinite(o.Price) {
			return fmt.Errorf("%w: %w", ErrInvalidOrder, ErrInvalidPrice)
		}
	case OrderTypeMarket:
	case OrderTypeStop:
		if !isPositiveFinite(o.StopPrice) {
			return fmt.Errorf("%w: %w", ErrInvalidOrder, ErrInvalidStopPrice)
		}
	default:
		return fmt.Errorf("%w: %w", ErrInvalidOrder, ErrInvalidType)
	}
	return nil
}

func (o Order) String() string {
	switch o.Type {
	case OrderTypeMarket:
		return fmt.Sprintf("[ID:%d %s MARKET %d]", o.ID, o.Side, o.Quantity)
	case OrderTypeStop:
		return fmt.Sprintf("[ID:%d %s STOP %d stop:%.2f]", o.ID, o.Side, o.Quantity, o.StopPrice)
	}
	return fmt.Sprintf("[ID:%d %s LIMIT %d@%.2f]", o.ID, o.Side, o.Quantity, o.Price)
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

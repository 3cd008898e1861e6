package orderbook

import "errors"

var (
	// ErrInvalidOrder is returned by AddOrder for every rejected order; the
	// specific cause is wrapped alongside it.
	ErrInvalidOrder = errors.New("invalid order")

	ErrInvalidSide      = errors.New("side must be BUY or SELL")
	ErrInvalidType      = errors.New("type must be LIMIT, MARKET or STOP")
	ErrInvalidQuantity  = errors.New("quantity must be greater than 0")
	ErrInvalidPrice     = errors.New("price must be a finite value greater than 0")
	ErrInvalidStopPrice = errors.New("stop price must be a finite value greater than 0")
	ErrDuplicateOrderID = errors.New("order id already in use")
)

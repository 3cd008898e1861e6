package orderbook

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

func (s Side) String() string { return string(s) }

// Opposite returns the side an order of this side trades against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

func (s Side) IsValid() bool {
	return s == Buy || s == Sell
}

type OrderType string

const (
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeStop   OrderType = "STOP"
)

func (t OrderType) String() string {
	if t == "" {
		return string(OrderTypeLimit)
	}
	return string(t)
}

// Level is a read-only view of one price level.
type Level struct {
	Price       float64
	TotalVolume int64
	OrderCount  int
}

package v1

type PlaceOrderRequest struct {
	OrderID   int64   `json:"order_id"`
	Side      string  `json:"side"`                 // "BUY" ou "SELL"
	Type      string  `json:"type"`                 // "LIMIT", "MARKET" ou "STOP"; vazio = LIMIT
	Price     float64 `json:"price,omitempty"`      // LIMIT
	StopPrice float64 `json:"stop_price,omitempty"` // STOP
	Quantity  int64   `json:"quantity"`
	Timestamp int64   `json:"timestamp,omitempty"` // ms; vazio = agora
}

type OrderResponse struct {
	OrderID   int64   `json:"order_id"`
	Side      string  `json:"side"`
	Type      string  `json:"type"`
	Price     float64 `json:"price"`
	StopPrice float64 `json:"stop_price,omitempty"`
	Quantity  int64   `json:"quantity"`
	Timestamp int64   `json:"timestamp"`
}

type TradeResponse struct {
	Seq           uint64  `json:"seq"`
	BuyOrderID    int64   `json:"buy_order_id"`
	SellOrderID   int64   `json:"sell_order_id"`
	Price         float64 `json:"price"`
	Quantity      int64   `json:"quantity"`
	Timestamp     int64   `json:"timestamp"`
	AggressorSide string  `json:"aggressor_side"`
}

type PlaceOrderResponse struct {
	Order  OrderResponse   `json:"order"`
	Trades []TradeResponse `json:"trades"`
}

type CancelOrderResponse struct {
	OrderID   int64 `json:"order_id"`
	Cancelled bool  `json:"cancelled"`
}

type TradesResponse struct {
	Trades []TradeResponse `json:"trades"`
	// Próxima posição do journal a pedir com ?from, só em páginas cheias
	Next uint64 `json:"next,omitempty"`
}

type JournalTradeResponse struct {
	Position uint64        `json:"position"`
	Trade    TradeResponse `json:"trade"`
}

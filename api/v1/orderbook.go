package v1

type LevelResponse struct {
	Price       float64 `json:"price"`
	TotalVolume int64   `json:"total_volume"`
	OrderCount  int     `json:"order_count"`
}

type OrderbookResponse struct {
	Bids           []LevelResponse `json:"bids"`
	Asks           []LevelResponse `json:"asks"`
	BestBid        *float64        `json:"best_bid"`
	BestAsk        *float64        `json:"best_ask"`
	Spread         float64         `json:"spread"`
	BidTotalVolume int64           `json:"bid_total_volume"`
	AskTotalVolume int64           `json:"ask_total_volume"`
}

type OrdersResponse struct {
	Buys        []OrderResponse `json:"buys"`
	Sells       []OrderResponse `json:"sells"`
	StagedStops []OrderResponse `json:"staged_stops"`
}

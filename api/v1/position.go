package v1

type PositionResponse struct {
	NetQuantity   int64    `json:"net_quantity"`
	AveragePrice  float64  `json:"average_price"`
	RealizedPnL   float64  `json:"realized_pnl"`
	UnrealizedPnL float64  `json:"unrealized_pnl"`
	MarkPrice     *float64 `json:"mark_price,omitempty"`
}

type StatsResponse struct {
	OrdersAccepted  int64    `json:"orders_accepted"`
	OrdersRejected  int64    `json:"orders_rejected"`
	OrdersCancelled int64    `json:"orders_cancelled"`
	Trades          int64    `json:"trades"`
	Volume          int64    `json:"volume"`
	DroppedQuantity int64    `json:"dropped_quantity"`
	RestingOrders   int      `json:"resting_orders"`
	StagedStops     int      `json:"staged_stops"`
	LastTradePrice  *float64 `json:"last_trade_price"`

	// Contadores dos destinos de trades; ausente quando nenhum está configurado
	Sinks *SinkStatsResponse `json:"sinks,omitempty"`
}

type SinkStatsResponse struct {
	// Posições gravadas no journal, nil quando o journal está desligado
	JournalTrades *uint64 `json:"journal_trades,omitempty"`

	KafkaPublished int64 `json:"kafka_published"`
	KafkaDropped   int64 `json:"kafka_dropped"`
	KafkaFailed    int64 `json:"kafka_failed"`

	StreamSubscribers int   `json:"stream_subscribers"`
	StreamDropped     int64 `json:"stream_dropped"`

	// Primeiro erro de escrita do CSV de trades
	TradeLogError string `json:"trade_log_error,omitempty"`
}

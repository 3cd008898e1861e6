package v1

import "time"

type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// StreamMessage is one frame of the websocket trade stream.
type StreamMessage struct {
	Type string        `json:"type"`
	Data TradeResponse `json:"data"`
}

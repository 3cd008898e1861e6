package handler

import (
	"net/http"
	"strconv"
	"time"

	v1 "github.com/moura95/hft-simulator/api/v1"
	"github.com/moura95/hft-simulator/internal/engine"
	"github.com/moura95/hft-simulator/pkg/logger"
)

// SinkReporter reports the counters of the configured trade sinks.
type SinkReporter interface {
	SinkStats() v1.SinkStatsResponse
}

type PositionHandler struct {
	engine *engine.Engine
	sinks  SinkReporter
}

// NewPositionHandler takes a nil reporter when no sink counters are exposed.
func NewPositionHandler(engine *engine.Engine, sinks SinkReporter) *PositionHandler {
	return &PositionHandler{
		engine: engine,
		sinks:  sinks,
	}
}

// GetPosition godoc
// @Summary Get position
// @Description Net position, average price and P&L of the simulated account. With mark, the position is revalued at that price first.
// @Tags Position
// @Produce json
// @Param mark query number false "Mark price"
// @Success 200 {object} v1.PositionResponse "Position"
// @Failure 400 {object} v1.ErrorResponse "Invalid mark price"
// @Router /api/v1/position [get]
func (h *PositionHandler) GetPosition(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var mark *float64
	if raw := r.URL.Query().Get("mark"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			sendError(w, "mark must be a positive number", http.StatusBadRequest)
			logger.Warningf("Get position - invalid mark - Duration: %v", time.Since(start))
			return
		}
		mark = &v
	}

	pos := h.engine.Position(mark)
	response := v1.PositionResponse{
		NetQuantity:   pos.NetQuantity,
		AveragePrice:  pos.AveragePrice,
		RealizedPnL:   pos.RealizedPnL,
		UnrealizedPnL: pos.UnrealizedPnL,
		MarkPrice:     mark,
	}
	sendJSON(w, response, http.StatusOK)

	logger.Infof("Get position success - Net: %d - Realized: %.2f - Status: 200 - Duration: %v",
		pos.NetQuantity, pos.RealizedPnL, time.Since(start))
}

// GetStats godoc
// @Summary Get engine statistics
// @Description Order and trade counters, book occupancy and, when configured, trade sink counters (journal, Kafka, websocket stream, CSV log)
// @Tags Position
// @Produce json
// @Success 200 {object} v1.StatsResponse "Statistics"
// @Router /api/v1/stats [get]
func (h *PositionHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	stats := h.engine.Stats()
	response := v1.StatsResponse{
		OrdersAccepted:  stats.OrdersAccepted,
		OrdersRejected:  stats.OrdersRejected,
		OrdersCancelled: stats.OrdersCancelled,
		Trades:          stats.Trades,
		Volume:          stats.Volume,
		DroppedQuantity: stats.DroppedQuantity,
		RestingOrders:   stats.RestingOrders,
		StagedStops:     stats.StagedStops,
	}
	if price, ok := h.engine.LastTradePrice(); ok {
		response.LastTradePrice = &price
	}
	if h.sinks != nil {
		sinks := h.sinks.SinkStats()
		response.Sinks = &sinks
	}
	sendJSON(w, response, http.StatusOK)

	logger.Debugf("Get stats success - Status: 200 - Duration: %v", time.Since(start))
}

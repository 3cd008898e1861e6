package handler

import (
	"net/http"
	"time"

	v1 "github.com/moura95/hft-simulator/api/v1"
	"github.com/moura95/hft-simulator/internal/engine"
	"github.com/moura95/hft-simulator/internal/orderbook"
	"github.com/moura95/hft-simulator/pkg/logger"
)

type OrderbookHandler struct {
	engine *engine.Engine
}

func NewOrderbookHandler(engine *engine.Engine) *OrderbookHandler {
	return &OrderbookHandler{
		engine: engine,
	}
}

// GetOrderbook godoc
// @Summary Get orderbook
// @Description Aggregated price levels per side, best price first, with best bid/ask and spread
// @Tags Orderbook
// @Produce json
// @Success 200 {object} v1.OrderbookResponse "Orderbook retrieved successfully"
// @Router /api/v1/orderbook [get]
func (h *OrderbookHandler) GetOrderbook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	response := h.orderbookToResponse(h.engine.Book())
	sendJSON(w, response, http.StatusOK)

	logger.Infof("Get orderbook success - Bids: %d - Asks: %d - Status: 200 - Duration: %v",
		len(response.Bids), len(response.Asks), time.Since(start))
}

// Helper methods

func (h *OrderbookHandler) orderbookToResponse(book engine.BookSnapshot) v1.OrderbookResponse {
	bids, bidVolume := levelsToResponse(book.BidDepth)
	asks, askVolume := levelsToResponse(book.AskDepth)

	return v1.OrderbookResponse{
		Bids:           bids,
		Asks:           asks,
		BestBid:        book.BestBid,
		BestAsk:        book.BestAsk,
		Spread:         book.Spread,
		BidTotalVolume: bidVolume,
		AskTotalVolume: askVolume,
	}
}

func levelsToResponse(levels []orderbook.Level) ([]v1.LevelResponse, int64) {
	var total int64
	result := make([]v1.LevelResponse, len(levels))
	for i, l := range levels {
		result[i] = v1.LevelResponse{
			Price:       l.Price,
			TotalVolume: l.TotalVolume,
			OrderCount:  l.OrderCount,
		}
		total += l.TotalVolume
	}
	return result, total
}

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	v1 "github.com/moura95/hft-simulator/api/v1"
	"github.com/moura95/hft-simulator/internal/orderbook"
	"github.com/moura95/hft-simulator/internal/store"
	"github.com/moura95/hft-simulator/internal/stream"
	"github.com/moura95/hft-simulator/pkg/logger"
)

const (
	defaultTradeLimit = 50
	maxTradeLimit     = 1000

	streamBuffer       = 64
	streamWriteTimeout = 5 * time.Second
)

// TradeJournal serves journaled trades by position.
type TradeJournal interface {
	// Recent returns the newest trades first.
	Recent(limit int) ([]orderbook.TradeEvent, error)
	// Get returns store.ErrTradeNotFound for an unknown position.
	Get(pos uint64) (orderbook.TradeEvent, error)
	Replay(from uint64, fn func(pos uint64, t orderbook.TradeEvent) error) error
}

// errPageFull stops a journal replay once a page is complete.
var errPageFull = errors.New("page full")

type TradeHandler struct {
	journal  TradeJournal
	hub      *stream.Hub[orderbook.TradeEvent]
	upgrader websocket.Upgrader
}

// NewTradeHandler takes a nil journal when trade storage is disabled.
func NewTradeHandler(journal TradeJournal, hub *stream.Hub[orderbook.TradeEvent]) *TradeHandler {
	return &TradeHandler{
		journal:  journal,
		hub:      hub,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
}

// GetTrades godoc
// @Summary Recent trades
// @Description Most recent journaled trades, newest first
// @Tags Trades
// @Produce json
// @Description With from, trades are paged oldest first starting at that journal position; next is set when the page is full
// @Param limit query int false "Maximum number of trades (default 50, max 1000)"
// @Param from query int false "First journal position"
// @Success 200 {object} v1.TradesResponse "Trades"
// @Failure 400 {object} v1.ErrorResponse "Invalid limit or position"
// @Failure 500 {object} v1.ErrorResponse "Trade store read failed"
// @Failure 503 {object} v1.ErrorResponse "Trade store disabled"
// @Router /api/v1/trades [get]
func (h *TradeHandler) GetTrades(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.journal == nil {
		sendError(w, "trade store is disabled", http.StatusServiceUnavailable)
		logger.Warningf("Get trades - store disabled - Duration: %v", time.Since(start))
		return
	}

	limit := defaultTradeLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > maxTradeLimit {
			sendError(w, "limit must be between 1 and 1000", http.StatusBadRequest)
			logger.Warningf("Get trades - invalid limit - Duration: %v", time.Since(start))
			return
		}
		limit = v
	}

	var (
		response v1.TradesResponse
		trades   []orderbook.TradeEvent
		err      error
	)
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, perr := strconv.ParseUint(raw, 10, 64)
		if perr != nil || from == 0 {
			sendError(w, "from must be a journal position of at least 1", http.StatusBadRequest)
			logger.Warningf("Get trades - invalid from - Duration: %v", time.Since(start))
			return
		}
		trades, response.Next, err = h.page(from, limit)
	} else {
		trades, err = h.journal.Recent(limit)
	}
	if err != nil {
		sendError(w, "failed to read trades", http.StatusInternalServerError)
		logger.Errorf("Get trades failed - Duration: %v - Error: %v", time.Since(start), err)
		return
	}

	response.Trades = tradesToResponse(trades)
	sendJSON(w, response, http.StatusOK)

	logger.Infof("Get trades success - Trades: %d - Status: 200 - Duration: %v", len(trades), time.Since(start))
}

// page reads up to limit trades from position from, oldest first. next is the
// position after the page, 0 when the journal ran out first.
func (h *TradeHandler) page(from uint64, limit int) (trades []orderbook.TradeEvent, next uint64, err error) {
	err = h.journal.Replay(from, func(pos uint64, t orderbook.TradeEvent) error {
		trades = append(trades, t)
		if len(trades) == limit {
			next = pos + 1
			return errPageFull
		}
		return nil
	})
	if errors.Is(err, errPageFull) {
		err = nil
	}
	return trades, next, err
}

// GetTrade godoc
// @Summary Trade by journal position
// @Tags Trades
// @Produce json
// @Param pos path int true "Journal position"
// @Success 200 {object} v1.JournalTradeResponse "Trade"
// @Failure 400 {object} v1.ErrorResponse "Invalid position"
// @Failure 404 {object} v1.ErrorResponse "No trade at that position"
// @Failure 503 {object} v1.ErrorResponse "Trade store disabled"
// @Router /api/v1/trades/{pos} [get]
func (h *TradeHandler) GetTrade(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.journal == nil {
		sendError(w, "trade store is disabled", http.StatusServiceUnavailable)
		logger.Warningf("Get trade - store disabled - Duration: %v", time.Since(start))
		return
	}

	pos, err := strconv.ParseUint(mux.Vars(r)["pos"], 10, 64)
	if err != nil || pos == 0 {
		sendError(w, "position must be a positive integer", http.StatusBadRequest)
		logger.Warningf("Get trade - invalid position - Duration: %v", time.Since(start))
		return
	}

	trade, err := h.journal.Get(pos)
	if errors.Is(err, store.ErrTradeNotFound) {
		sendError(w, err.Error(), http.StatusNotFound)
		logger.Warningf("Get trade - not found - Position: %d - Duration: %v", pos, time.Since(start))
		return
	}
	if err != nil {
		sendError(w, "failed to read trade", http.StatusInternalServerError)
		logger.Errorf("Get trade failed - Position: %d - Duration: %v - Error: %v", pos, time.Since(start), err)
		return
	}

	sendJSON(w, v1.JournalTradeResponse{Position: pos, Trade: tradeToResponse(trade)}, http.StatusOK)

	logger.Infof("Get trade success - Position: %d - Status: 200 - Duration: %v", pos, time.Since(start))
}

// StreamTrades godoc
// @Summary Live trade stream
// @Description Websocket that pushes every trade as {"type":"trade","data":{...}}. Slow clients miss trades.
// @Tags Trades
// @Success 101 {object} v1.StreamMessage "Switching protocols"
// @Router /api/v1/trades/stream [get]
func (h *TradeHandler) StreamTrades(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warningf("Trade stream - upgrade failed - Error: %v", err)
		return
	}
	defer conn.Close()

	sub := h.hub.Subscribe(streamBuffer)
	defer h.hub.Unsubscribe(sub)
	logger.Infof("Trade stream opened - Subscriber: %s", sub.ID)

	// The client never sends anything useful; reading only detects a close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			logger.Infof("Trade stream closed - Subscriber: %s", sub.ID)
			return
		case trade, ok := <-sub.C():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
					time.Now().Add(streamWriteTimeout))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteJSON(v1.StreamMessage{Type: "trade", Data: tradeToResponse(trade)}); err != nil {
				logger.Warningf("Trade stream write failed - Subscriber: %s - Error: %v", sub.ID, err)
				return
			}
		}
	}
}

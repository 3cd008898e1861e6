package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	v1 "github.com/moura95/hft-simulator/api/v1"
	"github.com/moura95/hft-simulator/internal/engine"
	"github.com/moura95/hft-simulator/internal/orderbook"
	"github.com/moura95/hft-simulator/pkg/logger"
	"github.com/moura95/hft-simulator/pkg/utils"
)

// PriceTick is the price grid accepted over HTTP.
const PriceTick = 0.01

type OrderHandler struct {
	engine *engine.Engine
}

func NewOrderHandler(engine *engine.Engine) *OrderHandler {
	return &OrderHandler{
		engine: engine,
	}
}

// PlaceOrder godoc
// @Summary Place a new order
// @Description Admit a LIMIT, MARKET or STOP order. By default the book is matched and stop orders are checked right after admission; pass match=false to only admit it.
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body v1.PlaceOrderRequest true "Order details"
// @Param match query bool false "Run matching and stop checks after admission (default true)"
// @Success 200 {object} v1.PlaceOrderResponse "Order accepted"
// @Failure 400 {object} v1.ErrorResponse "Invalid request"
// @Failure 409 {object} v1.ErrorResponse "Duplicate order id"
// @Router /api/v1/orders [post]
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req v1.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		logger.Warningf("Place order - invalid JSON - Duration: %v - Error: %v", time.Since(start), err)
		return
	}

	if req.OrderID <= 0 {
		sendError(w, "order_id must be greater than 0", http.StatusBadRequest)
		logger.Warningf("Place order - invalid order_id - Duration: %v", time.Since(start))
		return
	}

	if !utils.IsValidTick(req.Price, PriceTick) || !utils.IsValidTick(req.StopPrice, PriceTick) {
		sendError(w, "price and stop_price must be multiples of 0.01", http.StatusBadRequest)
		logger.Warningf("Place order - price off tick - Duration: %v", time.Since(start))
		return
	}

	match := true
	if raw := r.URL.Query().Get("match"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			sendError(w, "match must be a boolean", http.StatusBadRequest)
			logger.Warningf("Place order - invalid match flag - Duration: %v", time.Since(start))
			return
		}
		match = v
	}

	order := h.requestToOrder(req)

	var (
		trades []orderbook.TradeEvent
		err    error
	)
	if match {
		trades, err = h.engine.Process(order)
	} else {
		trades, err = h.engine.AddOrder(order)
	}
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, orderbook.ErrDuplicateOrderID) {
			statusCode = http.StatusConflict
		}
		sendError(w, err.Error(), statusCode)
		logger.Warningf("Place order failed - OrderID: %d - Duration: %v - Error: %v",
			req.OrderID, time.Since(start), err)
		return
	}

	response := v1.PlaceOrderResponse{
		Order:  orderToResponse(order),
		Trades: tradesToResponse(trades),
	}
	sendJSON(w, response, http.StatusOK)

	logger.Infof("Place order success - OrderID: %d - Type: %s - Side: %s - Price: %.2f - Quantity: %d - Trades: %d - Status: 200 - Duration: %v",
		order.ID, order.Type, order.Side, order.Price, order.Quantity, len(trades), time.Since(start))
}

// CancelOrder godoc
// @Summary Cancel an order
// @Description Withdraw a resting order or a staged stop order by id
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} v1.CancelOrderResponse "Order cancelled"
// @Failure 400 {object} v1.ErrorResponse "Invalid request"
// @Failure 404 {object} v1.ErrorResponse "Order not found"
// @Router /api/v1/orders/{id} [delete]
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		sendError(w, "order id must be an integer", http.StatusBadRequest)
		logger.Warningf("Cancel order - invalid id - Duration: %v", time.Since(start))
		return
	}

	if !h.engine.CancelOrder(id) {
		sendError(w, engine.ErrOrderNotFound.Error(), http.StatusNotFound)
		logger.Infof("Cancel order - not found - OrderID: %d - Status: 404 - Duration: %v", id, time.Since(start))
		return
	}

	sendJSON(w, v1.CancelOrderResponse{OrderID: id, Cancelled: true}, http.StatusOK)

	logger.Infof("Cancel order success - OrderID: %d - Status: 200 - Duration: %v", id, time.Since(start))
}

// ListOrders godoc
// @Summary List orders
// @Description Resting buy and sell orders in priority order, plus staged stop orders
// @Tags Orders
// @Produce json
// @Success 200 {object} v1.OrdersResponse "Orders"
// @Router /api/v1/orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	book := h.engine.Book()
	response := v1.OrdersResponse{
		Buys:        ordersToResponse(book.Buys),
		Sells:       ordersToResponse(book.Sells),
		StagedStops: ordersToResponse(book.Stops),
	}
	sendJSON(w, response, http.StatusOK)

	logger.Infof("List orders success - Buys: %d - Sells: %d - Stops: %d - Status: 200 - Duration: %v",
		len(book.Buys), len(book.Sells), len(book.Stops), time.Since(start))
}

// MatchOrders godoc
// @Summary Run a matching round
// @Description Cross resting buy and sell orders until the book is no longer crossed
// @Tags Orders
// @Produce json
// @Success 200 {object} v1.TradesResponse "Trades produced"
// @Router /api/v1/match [post]
func (h *OrderHandler) MatchOrders(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	trades := h.engine.MatchOrders()
	sendJSON(w, v1.TradesResponse{Trades: tradesToResponse(trades)}, http.StatusOK)

	logger.Infof("Match orders success - Trades: %d - Status: 200 - Duration: %v", len(trades), time.Since(start))
}

// CheckStopOrders godoc
// @Summary Check stop orders
// @Description Activate every staged stop order whose trigger price has been reached
// @Tags Orders
// @Produce json
// @Success 200 {object} v1.TradesResponse "Trades produced"
// @Router /api/v1/stops/check [post]
func (h *OrderHandler) CheckStopOrders(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	trades := h.engine.CheckStopOrders()
	sendJSON(w, v1.TradesResponse{Trades: tradesToResponse(trades)}, http.StatusOK)

	logger.Infof("Check stop orders success - Trades: %d - Status: 200 - Duration: %v", len(trades), time.Since(start))
}

// Helper methods

func (h *OrderHandler) requestToOrder(req v1.PlaceOrderRequest) orderbook.Order {
	ts := req.Timestamp
	if ts == 0 {
		ts = time.Now().UnixMilli()
	}

	orderType := orderbook.OrderType(strings.ToUpper(req.Type))
	if orderType == "" {
		orderType = orderbook.OrderTypeLimit
	}

	return orderbook.Order{
		ID:        req.OrderID,
		Side:      orderbook.Side(strings.ToUpper(req.Side)),
		Type:      orderType,
		Price:     req.Price,
		Quantity:  req.Quantity,
		StopPrice: req.StopPrice,
		Timestamp: ts,
	}
}

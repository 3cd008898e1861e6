package handler

import (
	"encoding/json"
	"net/http"

	v1 "github.com/moura95/hft-simulator/api/v1"
	"github.com/moura95/hft-simulator/internal/orderbook"
	"github.com/moura95/hft-simulator/pkg/logger"
)

func sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("Error encoding JSON response: %v", err)
	}
}

func sendError(w http.ResponseWriter, message string, statusCode int) {
	sendJSON(w, v1.ErrorResponse{Error: message}, statusCode)
}

func orderToResponse(o orderbook.Order) v1.OrderResponse {
	return v1.OrderResponse{
		OrderID:   o.ID,
		Side:      string(o.Side),
		Type:      o.Type.String(),
		Price:     o.Price,
		StopPrice: o.StopPrice,
		Quantity:  o.Quantity,
		Timestamp: o.Timestamp,
	}
}

func ordersToResponse(orders []orderbook.Order) []v1.OrderResponse {
	result := make([]v1.OrderResponse, len(orders))
	for i, o := range orders {
		result[i] = orderToResponse(o)
	}
	return result
}

func tradeToResponse(t orderbook.TradeEvent) v1.TradeResponse {
	return v1.TradeResponse{
		Seq:           t.Seq,
		BuyOrderID:    t.BuyOrderID,
		SellOrderID:   t.SellOrderID,
		Price:         t.Price,
		Quantity:      t.Quantity,
		Timestamp:     t.Timestamp,
		AggressorSide: string(t.AggressorSide),
	}
}

func tradesToResponse(trades []orderbook.TradeEvent) []v1.TradeResponse {
	result := make([]v1.TradeResponse, len(trades))
	for i, t := range trades {
		result[i] = tradeToResponse(t)
	}
	return result
}

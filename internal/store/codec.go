package store

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/moura95/hft-simulator/internal/orderbook"
)

// Trade records use the protobuf wire format so the journal can be read by
// any protobuf decoder with the matching message:
//
//	message Trade {
//	  uint64 seq = 1;
//	  int64  buy_order_id = 2;
//	  int64  sell_order_id = 3;
//	  double price = 4;
//	  int64  quantity = 5;
//	  int64  timestamp = 6;
//	  string aggressor_side = 7;
//	}
const (
	fieldSeq       protowire.Number = 1
	fieldBuyID     protowire.Number = 2
	fieldSellID    protowire.Number = 3
	fieldPrice     protowire.Number = 4
	fieldQuantity  protowire.Number = 5
	fieldTimestamp protowire.Number = 6
	fieldAggressor protowire.Number = 7
)

func encodeTrade(t orderbook.TradeEvent) []byte {
	b := make([]byte, 0, 64)
	b = protowire.AppendTag(b, fieldSeq, protowire.VarintType)
	b = protowire.AppendVarint(b, t.Seq)
	b = protowire.AppendTag(b, fieldBuyID, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(t.BuyOrderID))
	b = protowire.AppendTag(b, fieldSellID, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(t.SellOrderID))
	b = protowire.AppendTag(b, fieldPrice, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(t.Price))
	b = protowire.AppendTag(b, fieldQuantity, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(t.Quantity))
	b = protowire.AppendTag(b, fieldTimestamp, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(t.Timestamp))
	b = protowire.AppendTag(b, fieldAggressor, protowire.BytesType)
	b = protowire.AppendString(b, string(t.AggressorSide))
	return b
}

func decodeTrade(b []byte) (orderbook.TradeEvent, error) {
	var t orderbook.TradeEvent
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return t, fmt.Errorf("%w: %w", ErrCorruptRecord, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return t, fmt.Errorf("%w: %w", ErrCorruptRecord, protowire.ParseError(n))
			}
			b = b[n:]
			switch num {
			case fieldSeq:
				t.Seq = v
			case fieldBuyID:
				t.BuyOrderID = int64(v)
			case fieldSellID:
				t.SellOrderID = int64(v)
			case fieldQuantity:
				t.Quantity = int64(v)
			case fieldTimestamp:
				t.Timestamp = int64(v)
			}
		case num == fieldPrice && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return t, fmt.Errorf("%w: %w", ErrCorruptRecord, protowire.ParseError(n))
			}
			b = b[n:]
			t.Price = math.Float64frombits(v)
		case num == fieldAggressor && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return t, fmt.Errorf("%w: %w", ErrCorruptRecord, protowire.ParseError(n))
			}
			b = b[n:]
			t.AggressorSide = orderbook.Side(v)
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return t, fmt.Errorf("%w: %w", ErrCorruptRecord, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return t, nil
}

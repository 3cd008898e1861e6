package tradelog

import (
	"fmt"
	"io"
	"time"

	"github.com/moura95/hft-simulator/internal/orderbook"
	"github.com/moura95/hft-simulator/internal/position"
	"github.com/moura95/hft-simulator/pkg/utils"
)

// Summary aggregates the trades seen by a Writer.
type Summary struct {
	Trades    int64
	Volume    int64
	Notional  float64
	FirstTime int64
	LastTime  int64
	Position  position.Position
}

func (s *Summary) add(t orderbook.TradeEvent, p position.Position) {
	if s.Trades == 0 {
		s.FirstTime = t.Timestamp
	}
	s.Trades++
	s.Volume += t.Quantity
	s.Notional += t.Price * float64(t.Quantity)
	s.LastTime = t.Timestamp
	s.Position = p
}

// VWAP is the volume-weighted average trade price, 0 with no volume.
func (s Summary) VWAP() float64 {
	if s.Volume == 0 {
		return 0
	}
	return s.Notional / float64(s.Volume)
}

func (s Summary) Print(out io.Writer, loc *time.Location) {
	fmt.Fprintln(out, "\n--- Trade Summary ---")
	fmt.Fprintf(out, "Total Trades: %d\n", s.Trades)
	fmt.Fprintf(out, "Total Volume: %d\n", s.Volume)
	if s.Trades > 0 {
		fmt.Fprintf(out, "VWAP: %.2f\n", s.VWAP())
		fmt.Fprintf(out, "First Trade: %s\n", utils.FormatTimestamp(s.FirstTime, loc))
		fmt.Fprintf(out, "Last Trade: %s\n", utils.FormatTimestamp(s.LastTime, loc))
	}
	fmt.Fprintf(out, "Net Position: %d\n", s.Position.NetQuantity)
	if !s.Position.IsFlat() {
		fmt.Fprintf(out, "Average Price: %.2f\n", s.Position.AveragePrice)
	}
	fmt.Fprintf(out, "Realized P&L: %.2f\n", s.Position.RealizedPnL)
	if !s.Position.IsFlat() {
		fmt.Fprintf(out, "Unrealized P&L: %.2f\n", s.Position.UnrealizedPnL)
	}
}

package tradelog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/moura95/hft-simulator/internal/orderbook"
	"github.com/moura95/hft-simulator/internal/position"
	"github.com/moura95/hft-simulator/pkg/logger"
)

var header = []string{
	"buy_order_id", "sell_order_id", "price", "quantity", "timestamp",
	"aggressor_side", "realized_pnl", "net_position", "avg_price",
}

// PositionSource supplies the position columns of each row. It is read right
// after the trade was applied to it.
type PositionSource interface {
	Snapshot() position.Position
}

// Writer is a TradeSink that appends one CSV row per trade and keeps the
// running totals for the summary.
type Writer struct {
	mu sync.Mutex

	csv    *csv.Writer
	closer io.Closer
	pos    PositionSource
	log    *logger.Logger

	err     error
	summary Summary
}

// NewWriter writes the header to w. pos may be nil, the position columns are
// then zero.
func NewWriter(w io.Writer, pos PositionSource) (*Writer, error) {
	tw := &Writer{
		csv: csv.NewWriter(w),
		pos: pos,
		log: logger.Named("tradelog"),
	}
	if c, ok := w.(io.Closer); ok {
		tw.closer = c
	}

	if err := tw.csv.Write(header); err != nil {
		return nil, fmt.Errorf("write trade log header: %w", err)
	}
	tw.csv.Flush()
	if err := tw.csv.Error(); err != nil {
		return nil, fmt.Errorf("write trade log header: %w", err)
	}
	return tw, nil
}

// Create truncates path and returns a Writer over it.
func Create(path string, pos PositionSource) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trade log: %w", err)
	}
	w, err := NewWriter(f, pos)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) Record(t orderbook.TradeEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var p position.Position
	if w.pos != nil {
		p = w.pos.Snapshot()
	}
	w.summary.add(t, p)

	if w.err != nil {
		return
	}
	row := []string{
		strconv.FormatInt(t.BuyOrderID, 10),
		strconv.FormatInt(t.SellOrderID, 10),
		strconv.FormatFloat(t.Price, 'f', 2, 64),
		strconv.FormatInt(t.Quantity, 10),
		strconv.FormatInt(t.Timestamp, 10),
		string(t.AggressorSide),
		strconv.FormatFloat(p.RealizedPnL, 'f', 2, 64),
		strconv.FormatInt(p.NetQuantity, 10),
		strconv.FormatFloat(p.AveragePrice, 'f', 2, 64),
	}
	if err := w.csv.Write(row); err != nil {
		w.fail(err)
		return
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.fail(err)
	}
}

// fail stops further writes. The summary keeps counting.
func (w *Writer) fail(err error) {
	w.err = err
	w.log.Errorf("Trade log write failed, disabling file output - %v", err)
}

// Err reports the first write error, if any.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *Writer) Summary() Summary {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.summary
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.csv.Flush()
	err := w.csv.Error()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

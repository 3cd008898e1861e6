package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/moura95/hft-simulator/internal/orderbook"
	"github.com/moura95/hft-simulator/pkg/logger"
)

// =============================================================================
// MALFORMED RECORD POLICY
// =============================================================================

// MalformedPolicy decides what happens to a record that cannot be parsed.
// Returning nil skips the record; returning an error aborts the read.
type MalformedPolicy func(line int, err error) error

func SkipMalformedRecord(int, error) error { return nil }

func FailOnMalformedRecord(line int, err error) error {
	return fmt.Errorf("line %d: %w", line, err)
}

// ParsePolicy maps a configuration value to a policy.
func ParsePolicy(name string) (MalformedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "skip":
		return SkipMalformedRecord, nil
	case "fail":
		return FailOnMalformedRecord, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// =============================================================================
// READER
// =============================================================================

const (
	colOrderID   = "order_id"
	colSide      = "side"
	colPrice     = "price"
	colQuantity  = "quantity"
	colTimestamp = "timestamp"
	colType      = "type"
	colStopPrice = "stop_price"
)

var requiredColumns = []string{colOrderID, colSide, colPrice, colQuantity, colTimestamp}

// Reader turns a CSV order file into orders. The first row is a header; the
// columns order_id, side, price, quantity and timestamp are required, type
// and stop_price are optional.
type Reader struct {
	policy MalformedPolicy
	log    *logger.Logger
}

type Option func(*Reader)

func WithMalformedPolicy(p MalformedPolicy) Option {
	return func(r *Reader) { r.policy = p }
}

func WithLogger(l *logger.Logger) Option {
	return func(r *Reader) { r.log = l }
}

func NewReader(opts ...Option) *Reader {
	r := &Reader{
		policy: SkipMalformedRecord,
		log:    logger.Named("feed"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) ReadFile(path string) ([]orderbook.Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open order file: %w", err)
	}
	defer f.Close()

	orders, err := r.Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return orders, nil
}

// Read parses every record in file order.
func (r *Reader) Read(in io.Reader) ([]orderbook.Order, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyOrderSource
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var (
		orders  []orderbook.Order
		skipped int
	)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var (
			line  int
			order orderbook.Order
		)
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, fmt.Errorf("read record: %w", err)
			}
			line, err = perr.Line, fmt.Errorf("%w: %w", ErrMalformedRecord, perr.Err)
		} else {
			line, _ = cr.FieldPos(0)
			order, err = cols.parse(record)
		}
		if err != nil {
			if perr := r.policy(line, err); perr != nil {
				return nil, perr
			}
			skipped++
			r.log.Warningf("Skipping malformed order record - Line: %d - %v", line, err)
			continue
		}
		orders = append(orders, order)
	}

	if skipped > 0 {
		r.log.Infof("Loaded %d orders, skipped %d malformed records", len(orders), skipped)
	}
	return orders, nil
}

// columns maps column names to record positions.
type columns map[string]int

func columnIndex(header []string) (columns, error) {
	cols := make(columns, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return cols, nil
}

func (c columns) field(record []string, name string) (string, bool) {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return "", false
	}
	return strings.TrimSpace(record[i]), true
}

func (c columns) parse(record []string) (orderbook.Order, error) {
	var o orderbook.Order

	orderType, err := c.orderType(record)
	if err != nil {
		return o, err
	}
	o.Type = orderType

	if o.ID, err = c.int(record, colOrderID); err != nil {
		return o, err
	}
	raw, ok := c.field(record, colSide)
	if !ok {
		return o, fmt.Errorf("%w: missing %s", ErrMalformedRecord, colSide)
	}
	if o.Side, err = ParseSide(raw); err != nil {
		return o, err
	}
	if o.Quantity, err = c.int(record, colQuantity); err != nil {
		return o, err
	}
	if o.Timestamp, err = c.int(record, colTimestamp); err != nil {
		return o, err
	}

	// Only limit orders need a price; market and stop rows may leave it empty.
	if raw, _ := c.field(record, colPrice); raw != "" || orderType == orderbook.OrderTypeLimit {
		if o.Price, err = c.float(record, colPrice); err != nil {
			return o, err
		}
	}
	if orderType == orderbook.OrderTypeStop {
		if o.StopPrice, err = c.float(record, colStopPrice); err != nil {
			return o, err
		}
	}
	return o, nil
}

func (c columns) orderType(record []string) (orderbook.OrderType, error) {
	raw, _ := c.field(record, colType)
	switch strings.ToUpper(raw) {
	case "", string(orderbook.OrderTypeLimit):
		return orderbook.OrderTypeLimit, nil
	case string(orderbook.OrderTypeMarket):
		return orderbook.OrderTypeMarket, nil
	case string(orderbook.OrderTypeStop):
		return orderbook.OrderTypeStop, nil
	default:
		return "", fmt.Errorf("%w: unknown type %q", ErrMalformedRecord, raw)
	}
}

func (c columns) int(record []string, name string) (int64, error) {
	raw, ok := c.field(record, name)
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: missing %s", ErrMalformedRecord, name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrMalformedRecord, name, err)
	}
	return v, nil
}

func (c columns) float(record []string, name string) (float64, error) {
	raw, ok := c.field(record, name)
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: missing %s", ErrMalformedRecord, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrMalformedRecord, name, err)
	}
	return v, nil
}

// ParseSide accepts buy and sell in either case.
func ParseSide(s string) (orderbook.Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(orderbook.Buy):
		return orderbook.Buy, nil
	case string(orderbook.Sell):
		return orderbook.Sell, nil
	default:
		return "", fmt.Errorf("%w: unknown side %q", ErrMalformedRecord, s)
	}
}

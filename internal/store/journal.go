package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/moura95/hft-simulator/internal/orderbook"
	"github.com/moura95/hft-simulator/pkg/logger"
)

var (
	keyPrefix = []byte("trade/")
	keyUpper  = []byte("trade/\xff\xff\xff\xff\xff\xff\xff\xff\xff")
)

// key is the prefix followed by the big-endian journal position, so keys sort
// in append order.
func key(pos uint64) []byte {
	k := make([]byte, len(keyPrefix)+8)
	copy(k, keyPrefix)
	binary.BigEndian.PutUint64(k[len(keyPrefix):], pos)
	return k
}

func keyPosition(k []byte) uint64 {
	return binary.BigEndian.Uint64(k[len(keyPrefix):])
}

// Journal is a durable, append-only trade log on pebble. Entries are keyed by
// their journal position, which keeps growing across restarts; the book's
// own Seq starts over with every book and is kept inside the record.
type Journal struct {
	mu   sync.Mutex
	db   *pebble.DB
	last uint64
	log  *logger.Logger
}

func Open(dir string) (*Journal, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open trade journal: %w", err)
	}
	j := &Journal{db: db, log: logger.Named("store")}

	last, err := j.scanLast()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	j.last = last
	return j, nil
}

func (j *Journal) scanLast() (uint64, error) {
	iter, err := j.db.NewIter(&pebble.IterOptions{LowerBound: keyPrefix, UpperBound: keyUpper})
	if err != nil {
		return 0, fmt.Errorf("scan trade journal: %w", err)
	}
	defer iter.Close()

	if !iter.Last() {
		return 0, iter.Error()
	}
	return keyPosition(iter.Key()), nil
}

// Append stores t at the next journal position and returns that position.
func (j *Journal) Append(t orderbook.TradeEvent) (uint64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	pos := j.last + 1
	if err := j.db.Set(key(pos), encodeTrade(t), pebble.NoSync); err != nil {
		return 0, fmt.Errorf("append trade %d: %w", t.Seq, err)
	}
	j.last = pos
	return pos, nil
}

// Record journals a trade as a TradeSink. Failures are logged; the matching
// path does not stop for them.
func (j *Journal) Record(t orderbook.TradeEvent) {
	if _, err := j.Append(t); err != nil {
		j.log.Errorf("Journal append failed - %v", err)
	}
}

// Len is the number of journaled trades.
func (j *Journal) Len() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.last
}

func (j *Journal) Get(pos uint64) (orderbook.TradeEvent, error) {
	val, closer, err := j.db.Get(key(pos))
	if errors.Is(err, pebble.ErrNotFound) {
		return orderbook.TradeEvent{}, fmt.Errorf("%w: %d", ErrTradeNotFound, pos)
	}
	if err != nil {
		return orderbook.TradeEvent{}, err
	}
	defer closer.Close()

	return decodeTrade(val)
}

// Recent returns up to limit trades, newest first.
func (j *Journal) Recent(limit int) ([]orderbook.TradeEvent, error) {
	if limit <= 0 {
		return nil, nil
	}
	iter, err := j.db.NewIter(&pebble.IterOptions{LowerBound: keyPrefix, UpperBound: keyUpper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	out := make([]orderbook.TradeEvent, 0, limit)
	for valid := iter.Last(); valid && len(out) < limit; valid = iter.Prev() {
		t, err := decodeTrade(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("trade at %d: %w", keyPosition(iter.Key()), err)
		}
		out = append(out, t)
	}
	return out, iter.Error()
}

// Replay calls fn for every trade from position from onwards, oldest first.
func (j *Journal) Replay(from uint64, fn func(pos uint64, t orderbook.TradeEvent) error) error {
	iter, err := j.db.NewIter(&pebble.IterOptions{LowerBound: key(max(from, 1)), UpperBound: keyUpper})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		pos := keyPosition(iter.Key())
		t, err := decodeTrade(iter.Value())
		if err != nil {
			return fmt.Errorf("trade at %d: %w", pos, err)
		}
		if err := fn(pos, t); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Close flushes pending writes and closes the database.
func (j *Journal) Close() error {
	if err := j.db.Flush(); err != nil {
		_ = j.db.Close()
		return err
	}
	return j.db.Close()
}

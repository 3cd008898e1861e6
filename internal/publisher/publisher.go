package publisher

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/moura95/hft-simulator/internal/orderbook"
	"github.com/moura95/hft-simulator/pkg/logger"
)

const (
	defaultBufferSize   = 1024
	defaultBatchSize    = 100
	defaultWriteTimeout = 5 * time.Second
)

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter returns a writer that waits for all in-sync replicas.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
}

type tradeMessage struct {
	Seq           uint64  `json:"seq"`
	BuyOrderID    int64   `json:"buy_order_id"`
	SellOrderID   int64   `json:"sell_order_id"`
	Price         float64 `json:"price"`
	Quantity      int64   `json:"quantity"`
	Timestamp     int64   `json:"timestamp"`
	AggressorSide string  `json:"aggressor_side"`
}

// Publisher is a TradeSink that ships trades to Kafka off the matching path.
// Record only enqueues; a background goroutine writes in batches. When the
// queue is full the trade is dropped and counted.
type Publisher struct {
	w     MessageWriter
	queue chan kafka.Message
	done  chan struct{}
	log   *logger.Logger

	batchSize    int
	writeTimeout time.Duration

	mu     sync.RWMutex
	closed bool

	published atomic.Int64
	dropped   atomic.Int64
	failed    atomic.Int64
}

type Option func(*Publisher)

func WithBufferSize(n int) Option {
	return func(p *Publisher) { p.queue = make(chan kafka.Message, n) }
}

func WithBatchSize(n int) Option {
	return func(p *Publisher) { p.batchSize = n }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(p *Publisher) { p.writeTimeout = d }
}

func WithLogger(l *logger.Logger) Option {
	return func(p *Publisher) { p.log = l }
}

func New(w MessageWriter, opts ...Option) *Publisher {
	p := &Publisher{
		w:            w,
		queue:        make(chan kafka.Message, defaultBufferSize),
		done:         make(chan struct{}),
		log:          logger.Named("publisher"),
		batchSize:    defaultBatchSize,
		writeTimeout: defaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	go p.run()
	return p
}

func (p *Publisher) Record(t orderbook.TradeEvent) {
	value, err := json.Marshal(tradeMessage{
		Seq:           t.Seq,
		BuyOrderID:    t.BuyOrderID,
		SellOrderID:   t.SellOrderID,
		Price:         t.Price,
		Quantity:      t.Quantity,
		Timestamp:     t.Timestamp,
		AggressorSide: string(t.AggressorSide),
	})
	if err != nil {
		p.log.Errorf("Encode trade %d failed - %v", t.Seq, err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(t.Seq, 10)),
		Value: value,
		Time:  time.UnixMilli(t.Timestamp),
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.dropped.Add(1)
		return
	}
	select {
	case p.queue <- msg:
	default:
		p.dropped.Add(1)
		p.log.Warningf("Publish queue full, dropping trade %d", t.Seq)
	}
}

func (p *Publisher) run() {
	defer close(p.done)

	batch := make([]kafka.Message, 0, p.batchSize)
	for msg := range p.queue {
		batch = append(batch[:0], msg)
	drain:
		for len(batch) < p.batchSize {
			select {
			case next, ok := <-p.queue:
				if !ok {
					break drain
				}
				batch = append(batch, next)
			default:
				break drain
			}
		}
		p.write(batch)
	}
}

func (p *Publisher) write(batch []kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
	defer cancel()

	if err := p.w.WriteMessages(ctx, batch...); err != nil {
		p.failed.Add(int64(len(batch)))
		p.log.Errorf("Publish %d trades failed - %v", len(batch), err)
		return
	}
	p.published.Add(int64(len(batch)))
}

// Close stops accepting trades, drains the queue and closes the writer.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	<-p.done
	return p.w.Close()
}

type Stats struct {
	Published int64
	Dropped   int64
	Failed    int64
}

func (p *Publisher) Stats() Stats {
	return Stats{
		Published: p.published.Load(),
		Dropped:   p.dropped.Load(),
		Failed:    p.failed.Load(),
	}
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	v1 "github.com/moura95/hft-simulator/api/v1"
	"github.com/moura95/hft-simulator/config"
	"github.com/moura95/hft-simulator/internal/engine"
	"github.com/moura95/hft-simulator/internal/feed"
	"github.com/moura95/hft-simulator/internal/handler"
	"github.com/moura95/hft-simulator/internal/orderbook"
	"github.com/moura95/hft-simulator/internal/position"
	"github.com/moura95/hft-simulator/internal/publisher"
	"github.com/moura95/hft-simulator/internal/store"
	"github.com/moura95/hft-simulator/internal/strategy"
	"github.com/moura95/hft-simulator/internal/stream"
	"github.com/moura95/hft-simulator/internal/tradelog"
	"github.com/moura95/hft-simulator/pkg/logger"
)

const (
	Version = "1.0.0"

	shutdownTimeout = 10 * time.Second
)

type Server struct {
	config *config.Config
	engine *engine.Engine

	// Optional trade sinks, nil when disabled.
	tradeLog  *tradelog.Writer
	journal   *store.Journal
	publisher *publisher.Publisher
	hub       *stream.Hub[orderbook.TradeEvent]

	driver *strategy.Driver

	router     *mux.Router
	httpServer *http.Server
	grpcServer *grpc.Server
	health     *health.Server

	orderHandler     *handler.OrderHandler
	orderbookHandler *handler.OrderbookHandler
	positionHandler  *handler.PositionHandler
	tradeHandler     *handler.TradeHandler

	startTime time.Time
	closeOnce sync.Once
	closeErr  error
}

func NewServer(cfg *config.Config) (*Server, error) {
	logger.Info("Initializing server...")

	s := &Server{
		config:    cfg,
		hub:       stream.NewHub[orderbook.TradeEvent](),
		startTime: time.Now(),
	}

	// The account sees each trade before any sink, so the CSV log reads the
	// position that includes it.
	account := position.NewAccount()
	sinks, err := s.openSinks(account)
	if err != nil {
		s.closeSinks()
		return nil, err
	}

	// Initialize engine
	s.engine = engine.New(engine.Options{
		Account: account,
		Sinks:   sinks,
		Log:     logger.Named("engine"),
	})

	strategies, err := strategy.Parse(cfg.Strategy, cfg.StrategySpread, nil)
	if err != nil {
		s.closeSinks()
		return nil, err
	}
	s.driver = strategy.NewDriver(s.engine, cfg.StrategyInterval, strategies)

	// Initialize handlers
	var journal handler.TradeJournal
	if s.journal != nil {
		journal = s.journal
	}
	s.orderHandler = handler.NewOrderHandler(s.engine)
	s.orderbookHandler = handler.NewOrderbookHandler(s.engine)
	s.positionHandler = handler.NewPositionHandler(s.engine, s)
	s.tradeHandler = handler.NewTradeHandler(journal, s.hub)

	s.router = mux.NewRouter()
	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:              cfg.HTTPServerAddress,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.health = health.NewServer()
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	s.grpcServer = grpc.NewServer()
	healthpb.RegisterHealthServer(s.grpcServer, s.health)

	return s, nil
}

func (s *Server) openSinks(account *position.Account) ([]orderbook.TradeSink, error) {
	var sinks []orderbook.TradeSink

	if s.config.TradesCSV != "" {
		w, err := tradelog.Create(s.config.TradesCSV, account)
		if err != nil {
			return nil, err
		}
		s.tradeLog = w
		sinks = append(sinks, w)
		logger.Infof("Trade log: %s", s.config.TradesCSV)
	}

	if s.config.TradeStoreDir != "" {
		j, err := store.Open(s.config.TradeStoreDir)
		if err != nil {
			return nil, err
		}
		s.journal = j
		sinks = append(sinks, j)
		logger.Infof("Trade journal: %s (%d trades)", s.config.TradeStoreDir, j.Len())
	}

	if len(s.config.KafkaBrokers) > 0 {
		writer := publisher.NewKafkaWriter(s.config.KafkaBrokers, s.config.KafkaTopic)
		s.publisher = publisher.New(writer)
		sinks = append(sinks, s.publisher)
		logger.Infof("Publishing trades to Kafka topic %s", s.config.KafkaTopic)
	}

	sinks = append(sinks, orderbook.SinkFunc(s.hub.Broadcast))
	return sinks, nil
}

func (s *Server) registerRoutes() {
	s.router.Use(requestID)

	// Health check
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/swagger/doc.json", s.handleSwagger).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Order routes
	api.HandleFunc("/orders", s.orderHandler.PlaceOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders", s.orderHandler.ListOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", s.orderHandler.CancelOrder).Methods(http.MethodDelete)
	api.HandleFunc("/match", s.orderHandler.MatchOrders).Methods(http.MethodPost)
	api.HandleFunc("/stops/check", s.orderHandler.CheckStopOrders).Methods(http.MethodPost)

	// Orderbook and position routes
	api.HandleFunc("/orderbook", s.orderbookHandler.GetOrderbook).Methods(http.MethodGet)
	api.HandleFunc("/position", s.positionHandler.GetPosition).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.positionHandler.GetStats).Methods(http.MethodGet)

	// Trade routes
	api.HandleFunc("/trades", s.tradeHandler.GetTrades).Methods(http.MethodGet)
	api.HandleFunc("/trades/stream", s.tradeHandler.StreamTrades).Methods(http.MethodGet)
	api.HandleFunc("/trades/{pos:[0-9]+}", s.tradeHandler.GetTrade).Methods(http.MethodGet)

	logger.Info("Routes registered:")
	logger.Info("  GET    /health")
	logger.Info("  GET    /swagger/doc.json")
	logger.Info("  POST   /api/v1/orders?match={bool}")
	logger.Info("  GET    /api/v1/orders")
	logger.Info("  DELETE /api/v1/orders/{id}")
	logger.Info("  POST   /api/v1/match")
	logger.Info("  POST   /api/v1/stops/check")
	logger.Info("  GET    /api/v1/orderbook")
	logger.Info("  GET    /api/v1/position?mark={price}")
	logger.Info("  GET    /api/v1/stats")
	logger.Info("  GET    /api/v1/trades?limit={n}&from={pos}")
	logger.Info("  GET    /api/v1/trades/{pos}")
	logger.Info("  GET    /api/v1/trades/stream (websocket)")
}

// requestID tags every request and response with an X-Request-ID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Engine() *engine.Engine {
	return s.engine
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Replay loads ORDERS_CSV into the book, then runs one matching round and one
// stop check.
func (s *Server) Replay() error {
	if s.config.OrdersCSV == "" {
		return nil
	}
	policy, err := feed.ParsePolicy(s.config.MalformedPolicy)
	if err != nil {
		return err
	}

	orders, err := feed.NewReader(feed.WithMalformedPolicy(policy)).ReadFile(s.config.OrdersCSV)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %d orders from %s", len(orders), s.config.OrdersCSV)

	var rejected int
	for _, o := range orders {
		if _, err := s.engine.AddOrder(o); err != nil {
			rejected++
		}
	}

	trades := s.engine.MatchOrders()
	trades = append(trades, s.engine.CheckStopOrders()...)
	logger.Infof("Replay complete - Orders: %d - Rejected: %d - Trades: %d", len(orders), rejected, len(trades))
	return nil
}

// Run replays the order file, then serves HTTP and gRPC and runs the
// strategies until ctx is done or a listener fails.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Replay(); err != nil {
		return fmt.Errorf("replay orders: %w", err)
	}

	lis, err := net.Listen("tcp", s.config.GRPCServerAddress)
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		if err := s.grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	go func() {
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	logger.Infof("Server starting on %s, gRPC health on %s (version %s)",
		s.config.HTTPServerAddress, lis.Addr(), Version)

	driverCtx, stopDriver := context.WithCancel(ctx)
	driverDone := make(chan struct{})
	go func() {
		defer close(driverDone)
		s.driver.Run(driverCtx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutting down...")
	case runErr = <-errCh:
		logger.Errorf("Server failed: %v", runErr)
	}

	stopDriver()
	<-driverDone

	s.health.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP shutdown: %v", err)
	}
	s.grpcServer.GracefulStop()
	s.hub.Close()

	return runErr
}

// Close flushes and closes the trade sinks. Call it after Run returns.
func (s *Server) Close() error {
	s.closeOnce.Do(func() { s.closeErr = s.closeSinks() })
	return s.closeErr
}

func (s *Server) closeSinks() error {
	var errs []error
	if s.publisher != nil {
		errs = append(errs, s.publisher.Close())
	}
	if s.journal != nil {
		errs = append(errs, s.journal.Close())
	}
	if s.tradeLog != nil {
		errs = append(errs, s.tradeLog.Close())
	}
	return errors.Join(errs...)
}

// SinkStats collects the counters of the trade sinks for GET /api/v1/stats.
func (s *Server) SinkStats() v1.SinkStatsResponse {
	var out v1.SinkStatsResponse
	if s.journal != nil {
		n := s.journal.Len()
		out.JournalTrades = &n
	}
	if s.publisher != nil {
		stats := s.publisher.Stats()
		out.KafkaPublished = stats.Published
		out.KafkaDropped = stats.Dropped
		out.KafkaFailed = stats.Failed
	}
	out.StreamSubscribers = s.hub.Len()
	out.StreamDropped = s.hub.Dropped()
	if s.tradeLog != nil {
		if err := s.tradeLog.Err(); err != nil {
			out.TradeLogError = err.Error()
		}
	}
	return out
}

// Summary reports the session's trading. Without a trade log it is built
// from the engine counters.
func (s *Server) Summary() tradelog.Summary {
	if s.tradeLog != nil {
		return s.tradeLog.Summary()
	}
	stats := s.engine.Stats()
	return tradelog.Summary{
		Trades:   stats.Trades,
		Volume:   stats.Volume,
		Position: s.engine.Position(nil),
	}
}

// =============================================================================
// HANDLERS
// =============================================================================

// handleHealth godoc
// @Summary Health check
// @Description Returns the health status of the API
// @Tags Health
// @Produce json
// @Success 200 {object} v1.HealthResponse "Service is healthy"
// @Router /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := v1.HealthResponse{
		Status:    "healthy",
		Version:   Version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Timestamp: time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Errorf("Error encoding health response: %v", err)
	}
}

func (s *Server) handleSwagger(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, "swagger doc not available", http.StatusNotFound)
		logger.Warningf("Swagger doc - %v", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, doc)
}

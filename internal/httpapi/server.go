// Package httpapi serves the ledger's closed operation surface over JSON.
// Mutating routes require a bearer token whose subject is the caller's
// ledger address; queries are open. Balance callbacks are delivered
// synchronously, so a failing destination fails the originating call.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/editions/internal/engine"
	"github.com/mesh-intelligence/editions/pkg/types"
)

// Server exposes one ledger engine over HTTP.
type Server struct {
	ledger  *engine.Engine
	tokens  *TokenService
	logger  *zap.Logger
	metrics *Metrics
	client  *http.Client
	now     func() time.Time
}

// NewServer wires a server around an engine. The registerer receives the
// API metrics; pass prometheus.DefaultRegisterer outside tests.
func NewServer(ledger *engine.Engine, tokens *TokenService, logger *zap.Logger, reg prometheus.Registerer) *Server {
	return &Server{
		ledger:  ledger,
		tokens:  tokens,
		logger:  logger,
		metrics: NewMetrics(reg),
		client:  &http.Client{Timeout: 10 * time.Second},
		now:     time.Now,
	}
}

// Router builds the route tree. Withdrawal is only routed when the engine
// was created with withdrawal enabled.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(requireCaller(s.tokens, s.logger))

			r.Post("/transfer", s.handleTransfer)
			r.Post("/balance_of", s.handleBalanceOf)
			r.Post("/operators", s.handleUpdateOperators)
			r.Post("/mint", s.handleMint)

			r.Route("/admin", func(r chi.Router) {
				r.Post("/mint_parameters", s.handleSetMintParameters)
				r.Post("/administrator", s.handleSetAdministrator)
				r.Post("/pause", s.handleSetPause)
				r.Post("/lock", s.handleLock)
				r.Post("/script", s.handleSetScript)
				r.Post("/base_uri", s.handleSetBaseURI)
				if s.ledger.Options().EnableWithdraw {
					r.Post("/withdraw", s.handleWithdraw)
				}
			})
		})

		r.Get("/tokens", s.handleListTokens)
		r.Get("/tokens/{id}", s.handleGetToken)
		r.Get("/tokens/{id}/metadata", s.handleTokenMetadata)
		r.Get("/tokens/{id}/supply", s.handleTotalSupply)
		r.Get("/balance", s.handleGetBalance)
		r.Get("/operators/check", s.handleIsOperator)
		r.Get("/metadata", s.handleCollectionMetadata)
	})
	return r
}

// call builds the engine call envelope for an authenticated request.
func (s *Server) call(r *http.Request, payment types.Mutez) types.Call {
	return types.Call{
		Caller:    CallerFrom(r.Context()),
		Payment:   payment,
		Timestamp: s.now().UTC(),
	}
}

// logRequests logs one line per request with zap.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

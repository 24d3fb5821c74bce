package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"marketplace/internal/command"
	serviceErrors "marketplace/internal/errors/service"
	zapLogger "marketplace/internal/logger/zap"
	svcMarket "marketplace/internal/services/market"
)

const dealerHeader = "X-Dealer-ID"

// Server is the HTTP face of the registry. Dealer identity rides in the
// X-Dealer-ID header; the command semantics are exactly the dispatcher's.
type Server struct {
	registry command.Registry
	router   chi.Router
}

func NewServer(registry command.Registry, timeout time.Duration) *Server {
	s := &Server{registry: registry}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Post("/orders", s.handlePost)
	r.Get("/orders", s.handleList)
	r.Get("/orders/{id}", s.handleCheck)
	r.Delete("/orders/{id}", s.handleRevoke)
	r.Post("/trades", s.handleAggress)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	dealerID, ok := dealerFrom(w, r)
	if !ok {
		return
	}

	var req postOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	request, err := svcMarket.ValidatePost([]string{
		req.Side,
		req.Commodity,
		strconv.FormatInt(req.Quantity, 10),
		req.Price,
	})
	if err != nil {
		writeProblem(w, r, http.StatusUnprocessableEntity, errorCode(err), err.Error())
		return
	}

	order, err := s.registry.Post(r.Context(), dealerID, request)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", "/orders/"+strconv.FormatInt(order.ID, 10))
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toOrderResponse(order))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	terms := r.URL.Query()["term"]

	orders, err := s.registry.List(r.Context(), terms)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	dealerID, ok := dealerFrom(w, r)
	if !ok {
		return
	}

	orderID, ok := orderIDFrom(w, r)
	if !ok {
		return
	}

	order, err := s.registry.Check(r.Context(), dealerID, orderID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toOrderResponse(order))
}

func (s *Server) handleRevoke(w http.ResponseWriter, r *http.Request) {
	dealerID, ok := dealerFrom(w, r)
	if !ok {
		return
	}

	orderID, ok := orderIDFrom(w, r)
	if !ok {
		return
	}

	if _, err := s.registry.Revoke(r.Context(), dealerID, orderID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAggress(w http.ResponseWriter, r *http.Request) {
	dealerID, ok := dealerFrom(w, r)
	if !ok {
		return
	}

	var req aggressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if len(req.Trades) == 0 {
		writeProblem(w, r, http.StatusBadRequest, "validation_error", "at least one trade is required")
		return
	}

	trades := make([]svcMarket.TradeRequest, 0, len(req.Trades))
	for _, trade := range req.Trades {
		if trade.OrderID < 0 {
			writeProblem(w, r, http.StatusUnprocessableEntity,
				serviceErrors.ErrInvalidOrderID.Error(), "order_id must be >= 0")
			return
		}
		if trade.Quantity < 1 {
			writeProblem(w, r, http.StatusUnprocessableEntity,
				serviceErrors.ErrInvalidAmount.Error(), "quantity must be >= 1")
			return
		}

		trades = append(trades, svcMarket.TradeRequest{OrderID: trade.OrderID, Quantity: trade.Quantity})
	}

	results, err := s.registry.Aggress(r.Context(), dealerID, trades)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toTradeResponses(results))
}

func dealerFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	dealerID := r.Header.Get(dealerHeader)
	if dealerID == "" {
		writeProblem(w, r, http.StatusBadRequest, "validation_error", dealerHeader+" header is required")
		return "", false
	}

	return dealerID, true
}

func orderIDFrom(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")

	orderID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || orderID < 0 {
		writeProblem(w, r, http.StatusUnprocessableEntity,
			serviceErrors.ErrInvalidOrderID.Error(), "id must be a non-negative integer")
		return 0, false
	}

	return orderID, true
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, serviceErrors.ErrUnknownOrder):
		writeProblem(w, r, http.StatusNotFound, serviceErrors.ErrUnknownOrder.Error(), "order not found")

	case errors.Is(err, serviceErrors.ErrUnauthorized):
		writeProblem(w, r, http.StatusForbidden, serviceErrors.ErrUnauthorized.Error(), "order belongs to another dealer")

	case errors.Is(err, serviceErrors.ErrRateLimitExceeded):
		writeProblem(w, r, http.StatusTooManyRequests, serviceErrors.ErrRateLimitExceeded.Error(), "slow down")

	default:
		zapLogger.Error(r.Context(), "request failed", zap.Error(err))
		writeProblem(w, r, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func errorCode(err error) string {
	for _, kind := range []error{
		serviceErrors.ErrInvalidSide,
		serviceErrors.ErrInvalidCommodity,
		serviceErrors.ErrInvalidAmount,
		serviceErrors.ErrInvalidPrice,
		serviceErrors.ErrInvalidOrderID,
		serviceErrors.ErrNoOrderIDProvided,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}

	return "validation_error"
}

func writeProblem(w http.ResponseWriter, r *http.Request, code int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"title":      title,
		"status":     code,
		"detail":     detail,
		"instance":   r.URL.Path,
		"request_id": zapLogger.TraceIDFromContext(r.Context()),
	})
}

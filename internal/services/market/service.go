package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"marketplace/internal/domain/models"
	serviceErrors "marketplace/internal/errors/service"
	storageErrors "marketplace/internal/errors/storage"
	"marketplace/internal/events"
	zapLogger "marketplace/internal/logger/zap"
)

// Service implements the order registry operations over a single book.
type Service struct {
	book      Book
	publisher EventPublisher

	postLimiter    RateLimiter
	aggressLimiter RateLimiter
}

// Book is the order store as the service consumes it. All mutations are
// atomic per call; the service never holds state of its own.
type Book interface {
	SaveOrder(ctx context.Context, order models.Order) (models.Order, error)
	GetOrder(ctx context.Context, id int64) (models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	ReduceQuantity(ctx context.Context, id int64, quantity int64) (models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type RateLimiter interface {
	Allow(ctx context.Context, dealerID string) (bool, error)
}

func NewService(book Book, publisher EventPublisher, post, aggress RateLimiter) *Service {
	return &Service{
		book:           book,
		publisher:      publisher,
		postLimiter:    post,
		aggressLimiter: aggress,
	}
}

// Post creates a resting order for dealerID and returns it with its fresh ID.
func (s *Service) Post(ctx context.Context, dealerID string, request PostRequest) (models.Order, error) {
	const op = "Service.Post"

	if err := s.checkLimit(ctx, s.postLimiter, dealerID); err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order, err := s.book.SaveOrder(ctx, models.Order{
		DealerID:  dealerID,
		Side:      request.Side,
		Commodity: request.Commodity,
		Quantity:  request.Quantity,
		Price:     request.Price,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, events.OrderPosted(order))

	return order, nil
}

// Revoke removes dealerID's own order. A foreign or absent ID fails with
// UNKNOWN_ORDER either way, so non-owners cannot probe which IDs exist.
func (s *Service) Revoke(ctx context.Context, dealerID string, orderID int64) (int64, error) {
	const op = "Service.Revoke"

	order, err := s.book.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, storageErrors.ErrOrderNotFound) {
			return 0, fmt.Errorf("%s: %w", op, serviceErrors.ErrUnknownOrder)
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if order.DealerID != dealerID {
		return 0, fmt.Errorf("%s: %w", op, serviceErrors.ErrUnknownOrder)
	}

	if err := s.book.DeleteOrder(ctx, orderID); err != nil {
		if errors.Is(err, storageErrors.ErrOrderNotFound) {
			return 0, fmt.Errorf("%s: %w", op, serviceErrors.ErrUnknownOrder)
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, events.OrderRevoked(order))

	return order.ID, nil
}

// List returns all resting orders matching every term, in book order. Each
// term matches an order when it equals the commodity code or the owning
// dealer. Every dealer sees every order; listing is public.
func (s *Service) List(ctx context.Context, terms []string) ([]models.Order, error) {
	const op = "Service.List"

	orders, err := s.book.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(terms) == 0 {
		return orders, nil
	}

	out := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if matchesTerms(order, terms) {
			out = append(out, order)
		}
	}

	return out, nil
}

func matchesTerms(order models.Order, terms []string) bool {
	for _, term := range terms {
		if term != string(order.Commodity) && term != order.DealerID {
			return false
		}
	}

	return true
}

// Check returns dealerID's own order for inspection. An absent ID fails with
// UNKNOWN_ORDER; a foreign order fails with UNAUTHORIZED. Whether the order
// is fully filled is the caller's distinction, via Order.Filled.
func (s *Service) Check(ctx context.Context, dealerID string, orderID int64) (models.Order, error) {
	const op = "Service.Check"

	order, err := s.book.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, storageErrors.ErrOrderNotFound) {
			return models.Order{}, fmt.Errorf("%s: %w", op, serviceErrors.ErrUnknownOrder)
		}

		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if order.DealerID != dealerID {
		return models.Order{}, fmt.Errorf("%s: %w", op, serviceErrors.ErrUnauthorized)
	}

	return order, nil
}

func (s *Service) checkLimit(ctx context.Context, limiter RateLimiter, dealerID string) error {
	allowed, err := limiter.Allow(ctx, dealerID)
	if err != nil {
		return err
	}
	if !allowed {
		return serviceErrors.ErrRateLimitExceeded
	}

	return nil
}

// publish is best-effort: a broker outage must never fail a command.
func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		zapLogger.Error(ctx, "failed to publish event",
			zap.String("type", string(event.Type)),
			zap.Int64("orderId", event.OrderID),
			zap.Error(err),
		)
	}
}

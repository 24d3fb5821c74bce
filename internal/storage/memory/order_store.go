package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"marketplace/internal/domain/models"
	"marketplace/internal/errors/storage"
)

// OrderStore is the in-memory order book: the only owner of resting orders.
// IDs are assigned here, start at 1 and never repeat for the lifetime of the
// store.
type OrderStore struct {
	orders map[int64]models.Order
	nextID int64
	mu     sync.RWMutex
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[int64]models.Order, 1024),
		nextID: 1,
	}
}

// SaveOrder inserts order under a fresh ID and returns the stored copy.
// A collision is impossible by construction, so there is no error path
// besides context cancellation.
func (s *OrderStore) SaveOrder(ctx context.Context, order models.Order) (models.Order, error) {
	const op = "storage.OrderStore.SaveOrder"

	select {
	case <-ctx.Done():
		return models.Order{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = s.nextID
	s.nextID++

	s.orders[order.ID] = order
	return order, nil
}

func (s *OrderStore) GetOrder(ctx context.Context, id int64) (models.Order, error) {
	const op = "storage.OrderStore.GetOrder"

	select {
	case <-ctx.Done():
		return models.Order{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	result, found := s.orders[id]
	s.mu.RUnlock()

	if !found {
		return models.Order{}, fmt.Errorf("%s: %w", op, storage.ErrOrderNotFound)
	}

	return result, nil
}

// DeleteOrder removes the order entirely. Fully filled orders are NOT deleted
// here implicitly; they leave the book only through this call.
func (s *OrderStore) DeleteOrder(ctx context.Context, id int64) error {
	const op = "storage.OrderStore.DeleteOrder"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.orders[id]; !found {
		return fmt.Errorf("%s: %w", op, storage.ErrOrderNotFound)
	}

	delete(s.orders, id)
	return nil
}

// ReduceQuantity atomically subtracts quantity from the order's remaining
// quantity. The trade is rejected whole when quantity exceeds what remains,
// so remaining never goes below zero.
func (s *OrderStore) ReduceQuantity(ctx context.Context, id int64, quantity int64) (models.Order, error) {
	const op = "storage.OrderStore.ReduceQuantity"

	select {
	case <-ctx.Done():
		return models.Order{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, found := s.orders[id]
	if !found {
		return models.Order{}, fmt.Errorf("%s: %w", op, storage.ErrOrderNotFound)
	}

	if quantity > order.Quantity {
		return models.Order{}, fmt.Errorf("%s: %w", op, storage.ErrInsufficientQuantity)
	}

	order.Quantity -= quantity
	s.orders[id] = order

	return order, nil
}

// ListOrders returns a snapshot of every resting order in ascending-ID order.
// Listing is the observable iteration order of the book, so it has to be
// stable.
func (s *OrderStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	const op = "storage.OrderStore.ListOrders"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		out = append(out, order)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

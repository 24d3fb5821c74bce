package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketplace/internal/domain/models"
	"marketplace/internal/events"
)

type MockBook struct {
	mock.Mock
}

func (m *MockBook) SaveOrder(ctx context.Context, order models.Order) (models.Order, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *MockBook) GetOrder(ctx context.Context, id int64) (models.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *MockBook) DeleteOrder(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBook) ReduceQuantity(ctx context.Context, id int64, quantity int64) (models.Order, error) {
	args := m.Called(ctx, id, quantity)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *MockBook) ListOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)

	if orders, ok := args.Get(0).([]models.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, dealerID string) (bool, error) {
	args := m.Called(ctx, dealerID)
	return args.Bool(0), args.Error(1)
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/events"
	"marketplace/internal/infrastructure/local"
	svcMarket "marketplace/internal/services/market"
	"marketplace/internal/storage/memory"
)

func newTestServer() *Server {
	service := svcMarket.NewService(
		memory.NewOrderStore(),
		events.NopPublisher{},
		local.NewDealerRateLimiter(1000, time.Second),
		local.NewDealerRateLimiter(1000, time.Second),
	)

	return NewServer(service, 3*time.Second)
}

func do(t *testing.T, server *Server, method, target, dealerID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, target, reader)
	if dealerID != "" {
		request.Header.Set("X-Dealer-ID", dealerID)
	}

	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, request)

	return recorder
}

func postGold(t *testing.T, server *Server, dealerID string) orderResponse {
	t.Helper()

	recorder := do(t, server, http.MethodPost, "/orders", dealerID, postOrderRequest{
		Side:      "SELL",
		Commodity: "GOLD",
		Quantity:  10,
		Price:     "100.0",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var order orderResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &order))

	return order
}

func TestPostOrder(t *testing.T) {
	server := newTestServer()

	recorder := do(t, server, http.MethodPost, "/orders", "Alice", postOrderRequest{
		Side:      "SELL",
		Commodity: "GOLD",
		Quantity:  10,
		Price:     "100.0",
	})

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "/orders/1", recorder.Header().Get("Location"))

	var order orderResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &order))

	assert.Equal(t, int64(1), order.ID)
	assert.Equal(t, "Alice", order.DealerID)
	assert.Equal(t, "100.0", order.Price)
	assert.False(t, order.Filled)
}

func TestPostOrderRejectsMissingDealerHeader(t *testing.T) {
	server := newTestServer()

	recorder := do(t, server, http.MethodPost, "/orders", "", postOrderRequest{
		Side:      "SELL",
		Commodity: "GOLD",
		Quantity:  10,
		Price:     "100.0",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPostOrderValidation(t *testing.T) {
	tests := []struct {
		name          string
		request       postOrderRequest
		expectedTitle string
	}{
		{
			name:          "unknown side",
			request:       postOrderRequest{Side: "HOLD", Commodity: "GOLD", Quantity: 10, Price: "100.0"},
			expectedTitle: "INVALID_SIDE",
		},
		{
			name:          "unknown commodity",
			request:       postOrderRequest{Side: "SELL", Commodity: "TULIPS", Quantity: 10, Price: "100.0"},
			expectedTitle: "INVALID_COMMODITY",
		},
		{
			name:          "zero quantity",
			request:       postOrderRequest{Side: "SELL", Commodity: "GOLD", Quantity: 0, Price: "100.0"},
			expectedTitle: "INVALID_AMOUNT",
		},
		{
			name:          "negative price",
			request:       postOrderRequest{Side: "SELL", Commodity: "GOLD", Quantity: 10, Price: "-1"},
			expectedTitle: "INVALID_PRICE",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := newTestServer()

			recorder := do(t, server, http.MethodPost, "/orders", "Alice", test.request)

			require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

			var problem map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &problem))
			assert.Equal(t, test.expectedTitle, problem["title"])
		})
	}
}

func TestCheckOrder(t *testing.T) {
	server := newTestServer()
	posted := postGold(t, server, "Alice")

	recorder := do(t, server, http.MethodGet, "/orders/1", "Alice", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var order orderResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &order))
	assert.Equal(t, posted.ID, order.ID)

	recorder = do(t, server, http.MethodGet, "/orders/1", "Bob", nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = do(t, server, http.MethodGet, "/orders/99", "Alice", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = do(t, server, http.MethodGet, "/orders/banana", "Alice", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestRevokeOrder(t *testing.T) {
	server := newTestServer()
	postGold(t, server, "Alice")

	// A foreign revoke reads as not-found, never as forbidden.
	recorder := do(t, server, http.MethodDelete, "/orders/1", "Bob", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = do(t, server, http.MethodDelete, "/orders/1", "Alice", nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = do(t, server, http.MethodGet, "/orders/1", "Alice", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListOrders(t *testing.T) {
	server := newTestServer()
	postGold(t, server, "Alice")
	postGold(t, server, "Bob")

	recorder := do(t, server, http.MethodGet, "/orders", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var orders []orderResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &orders))
	require.Len(t, orders, 2)

	recorder = do(t, server, http.MethodGet, "/orders?term=GOLD&term=Bob", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "Bob", orders[0].DealerID)
}

func TestAggress(t *testing.T) {
	server := newTestServer()
	postGold(t, server, "Alice")

	recorder := do(t, server, http.MethodPost, "/trades", "Bob", aggressRequest{
		Trades: []tradeRequest{
			{OrderID: 1, Quantity: 4},
			{OrderID: 99, Quantity: 1},
		},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var results []tradeResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &results))
	require.Len(t, results, 2)

	assert.Equal(t, "BOUGHT", results[0].Direction)
	assert.Equal(t, "100.0", results[0].Price)
	assert.Equal(t, "Alice", results[0].Counterparty)
	assert.Empty(t, results[0].Error)

	assert.Equal(t, "UNKNOWN_ORDER", results[1].Error)
	assert.Empty(t, results[1].Direction)
}

func TestAggressValidation(t *testing.T) {
	server := newTestServer()

	recorder := do(t, server, http.MethodPost, "/trades", "Bob", aggressRequest{})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = do(t, server, http.MethodPost, "/trades", "Bob", aggressRequest{
		Trades: []tradeRequest{{OrderID: 1, Quantity: 0}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestRequestIDPropagates(t *testing.T) {
	server := newTestServer()

	request := httptest.NewRequest(http.MethodGet, "/orders/99", nil)
	request.Header.Set("X-Dealer-ID", "Alice")
	request.Header.Set("X-Request-ID", "req-123")

	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.True(t, strings.Contains(recorder.Body.String(), "req-123"))
}

func TestHealthz(t *testing.T) {
	server := newTestServer()

	recorder := do(t, server, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

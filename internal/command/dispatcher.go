package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"marketplace/internal/domain/models"
	serviceErrors "marketplace/internal/errors/service"
	zapLogger "marketplace/internal/logger/zap"
	"marketplace/internal/metrics"
	svcMarket "marketplace/internal/services/market"
)

// Registry is the market service as the dispatcher consumes it.
type Registry interface {
	Post(ctx context.Context, dealerID string, request svcMarket.PostRequest) (models.Order, error)
	Revoke(ctx context.Context, dealerID string, orderID int64) (int64, error)
	List(ctx context.Context, terms []string) ([]models.Order, error)
	Check(ctx context.Context, dealerID string, orderID int64) (models.Order, error)
	Aggress(ctx context.Context, dealerID string, trades []svcMarket.TradeRequest) ([]svcMarket.TradeResult, error)
}

type handler func(ctx context.Context, dealerID string, params []string) error

// Dispatcher maps command names to registry operations and reports outcomes
// on two channels: results on out, validation and domain errors on diag. It
// is the single catch point — no domain failure propagates past Dispatch and
// none is fatal to the process.
type Dispatcher struct {
	registry Registry
	handlers map[string]handler

	out  io.Writer
	diag io.Writer
}

func NewDispatcher(registry Registry, out, diag io.Writer) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		out:      out,
		diag:     diag,
	}

	d.handlers = map[string]handler{
		"POST":    d.post,
		"LIST":    d.list,
		"REVOKE":  d.revoke,
		"CHECK":   d.check,
		"AGGRESS": d.aggress,
	}

	return d
}

// Dispatch runs one command to completion and always returns normally,
// whether the command succeeded or was reported as an error.
func (d *Dispatcher) Dispatch(ctx context.Context, dealerID, command string, params []string) {
	h, known := d.handlers[command]
	if !known {
		fmt.Fprintf(d.diag, "ERROR: %s %s\n", serviceErrors.ErrUnknownCommand, command)
		metrics.CommandsDispatched.WithLabelValues(command, serviceErrors.ErrUnknownCommand.Error()).Inc()
		return
	}

	if err := h(ctx, dealerID, params); err != nil {
		code := errorCode(err)
		if code == codeInternal {
			zapLogger.Error(ctx, "command failed",
				zap.String("command", command),
				zap.String("dealerId", dealerID),
				zap.Error(err),
			)
		}

		fmt.Fprintf(d.diag, "ERROR: %s\n", code)
		metrics.CommandsDispatched.WithLabelValues(command, code).Inc()
		return
	}

	metrics.CommandsDispatched.WithLabelValues(command, "ok").Inc()
}

func (d *Dispatcher) post(ctx context.Context, dealerID string, params []string) error {
	request, err := svcMarket.ValidatePost(params)
	if err != nil {
		return err
	}

	order, err := d.registry.Post(ctx, dealerID, request)
	if err != nil {
		return err
	}

	fmt.Fprintf(d.out, "%s HAS BEEN POSTED\n", FormatOrder(order))
	return nil
}

func (d *Dispatcher) revoke(ctx context.Context, dealerID string, params []string) error {
	orderID, err := svcMarket.ValidateRevoke(params)
	if err != nil {
		return err
	}

	removedID, err := d.registry.Revoke(ctx, dealerID, orderID)
	if err != nil {
		return err
	}

	fmt.Fprintf(d.out, "%d HAS BEEN REVOKED\n", removedID)
	return nil
}

func (d *Dispatcher) list(ctx context.Context, dealerID string, params []string) error {
	orders, err := d.registry.List(ctx, params)
	if err != nil {
		return err
	}

	for _, order := range orders {
		fmt.Fprintln(d.out, FormatOrder(order))
	}

	return nil
}

// check reports presence on a different channel than the other outcomes:
// an unknown order goes to diag while UNAUTHORIZED and the order detail go
// to out. Odd, but it is the registry's long-standing observable contract.
func (d *Dispatcher) check(ctx context.Context, dealerID string, params []string) error {
	if len(params) == 0 {
		return serviceErrors.ErrNoOrderIDProvided
	}

	orderID, err := strconv.ParseInt(params[0], 10, 64)
	if err != nil || orderID < 0 {
		return serviceErrors.ErrInvalidOrderID
	}

	order, err := d.registry.Check(ctx, dealerID, orderID)
	switch {
	case errors.Is(err, serviceErrors.ErrUnknownOrder):
		fmt.Fprintln(d.diag, serviceErrors.ErrUnknownOrder)
		return nil
	case errors.Is(err, serviceErrors.ErrUnauthorized):
		fmt.Fprintln(d.out, serviceErrors.ErrUnauthorized)
		return nil
	case err != nil:
		return err
	}

	if order.Filled() {
		fmt.Fprintf(d.out, "%d HAS BEEN FILLED\n", order.ID)
		return nil
	}

	fmt.Fprintln(d.out, FormatOrder(order))
	return nil
}

func (d *Dispatcher) aggress(ctx context.Context, dealerID string, params []string) error {
	trades, err := parseTrades(params)
	if err != nil {
		return err
	}

	results, err := d.registry.Aggress(ctx, dealerID, trades)
	if err != nil {
		return err
	}

	for _, result := range results {
		if result.Err != nil {
			fmt.Fprintln(d.diag, errorCode(result.Err))
			continue
		}

		fmt.Fprintln(d.out, FormatFill(result.Fill))
	}

	return nil
}

// parseTrades consumes the flat parameter list two at a time. Malformed ids
// and quantities fail the whole command up front; a dangling id with no
// quantity counts as a malformed quantity.
func parseTrades(params []string) ([]svcMarket.TradeRequest, error) {
	if len(params) == 0 {
		return nil, serviceErrors.ErrNoOrderIDProvided
	}

	trades := make([]svcMarket.TradeRequest, 0, len(params)/2)
	for i := 0; i < len(params); i += 2 {
		orderID, err := strconv.ParseInt(params[i], 10, 64)
		if err != nil || orderID < 0 {
			return nil, serviceErrors.ErrInvalidOrderID
		}

		if i+1 >= len(params) {
			return nil, serviceErrors.ErrInvalidAmount
		}
		quantity, err := strconv.ParseInt(params[i+1], 10, 64)
		if err != nil || quantity < 1 {
			return nil, serviceErrors.ErrInvalidAmount
		}

		trades = append(trades, svcMarket.TradeRequest{OrderID: orderID, Quantity: quantity})
	}

	return trades, nil
}

const codeInternal = "INTERNAL"

// errorCode maps a service error to its reported kind; anything outside the
// taxonomy is INTERNAL.
func errorCode(err error) string {
	for _, kind := range []error{
		serviceErrors.ErrInvalidSide,
		serviceErrors.ErrInvalidCommodity,
		serviceErrors.ErrInvalidAmount,
		serviceErrors.ErrInvalidPrice,
		serviceErrors.ErrNoOrderIDProvided,
		serviceErrors.ErrInvalidOrderID,
		serviceErrors.ErrUnknownOrder,
		serviceErrors.ErrUnauthorized,
		serviceErrors.ErrRateLimitExceeded,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}

	return codeInternal
}

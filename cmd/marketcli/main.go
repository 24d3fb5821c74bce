package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"marketplace/internal/command"
	"marketplace/internal/events"
	"marketplace/internal/infrastructure/local"
	zapLogger "marketplace/internal/logger/zap"
	svcMarket "marketplace/internal/services/market"
	"marketplace/internal/storage/memory"
)

// sessionLimit is deliberately generous: a single interactive session is not
// worth throttling.
const sessionLimit = 1_000_000

// marketcli runs an interactive session against a fresh in-memory book.
// Each input line is `<dealerId> <COMMAND> [params...]`; results go to
// stdout, errors to stderr.
func main() {
	_ = godotenv.Load()
	zapLogger.SetNopLogger()

	book := memory.NewOrderStore()
	limiter := local.NewDealerRateLimiter(sessionLimit, time.Second)
	service := svcMarket.NewService(book, events.NopPublisher{}, limiter, limiter)
	dispatcher := command.NewDispatcher(service, os.Stdout, os.Stderr)

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			fmt.Fprintln(os.Stderr, "usage: <dealerId> <COMMAND> [params...]")
			continue
		}

		dispatcher.Dispatch(ctx, fields[0], fields[1], fields[2:])
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "read error:", err)
		os.Exit(1)
	}
}

// Command server runs the jaapghar backend: the REST API, the SurrealDB
// client and the local bbolt mirror in one process.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/jaapghar/jaapghar-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}

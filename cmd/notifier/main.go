package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"swimbooking/cmd/bootstrap"

	"go.uber.org/fx"
)

// The notifier relays the notification outbox to the broker and sends the
// emails it consumes back off the queue.
func main() {
	app := fx.New(bootstrap.NotifierModule)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start notifier", "error", err)
		os.Exit(1)
	}

	sig := <-app.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		slog.Error("failed to stop notifier", "error", err)
	}

	slog.Info("notifier stopped")
	os.Exit(sig.ExitCode)
}

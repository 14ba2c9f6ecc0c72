package components

import (
	"context"
	"log/slog"

	"swimbooking/internal/infra/broker"
	"swimbooking/internal/pkg/clock"
	"swimbooking/internal/pkg/config"
	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/usecase/notify"
	"swimbooking/internal/usecase/shared"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		fx.Annotate(
			func(p *broker.Publisher) *broker.Publisher { return p },
			fx.As(new(notify.Publisher)),
		),
		func(uow shared.UnitOfWork, pub notify.Publisher, clk clock.Clock, cfg config.Config) *notify.Relay {
			return notify.NewRelay(uow, pub, clk, cfg.Mail.RelayBatch)
		},
		notify.NewDispatcher,
		func(conn *broker.Connection, d *notify.Dispatcher) *broker.Consumer {
			return broker.NewConsumer(conn, d.Handle, func(err error) bool {
				return errs.Is(err, notify.ErrMalformedEvent)
			})
		},
	),
	fx.Invoke(runNotifier),
)

// runNotifier starts the relay loop and the consumer for the lifetime of the app.
func runNotifier(lc fx.Lifecycle, shutdowner fx.Shutdowner, relay *notify.Relay, consumer *broker.Consumer, cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{}, 2)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer func() { done <- struct{}{} }()
				if err := relay.Run(ctx, cfg.Mail.RelayInterval); err != nil && !errs.Is(err, context.Canceled) {
					slog.Error("notification relay stopped", "error", err.Error())
				}
			}()
			go func() {
				defer func() { done <- struct{}{} }()
				if err := consumer.Run(ctx); err != nil && !errs.Is(err, context.Canceled) {
					slog.Error("notification consumer stopped", "error", err.Error())
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			for range 2 {
				select {
				case <-done:
				case <-stopCtx.Done():
					return stopCtx.Err()
				}
			}
			return nil
		},
	})
}

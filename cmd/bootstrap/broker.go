package bootstrap

import (
	"context"

	"swimbooking/internal/infra/broker"
	"swimbooking/internal/pkg/config"

	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewBrokerConnection,
		NewBrokerPublisher,
	),
)

func NewBrokerConnection(lc fx.Lifecycle, cfg config.Config) (*broker.Connection, error) {
	conn, err := broker.Dial(cfg.AMQP)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return conn.Close()
		},
	})
	return conn, nil
}

func NewBrokerPublisher(lc fx.Lifecycle, conn *broker.Connection) *broker.Publisher {
	pub := broker.NewPublisher(conn)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub
}

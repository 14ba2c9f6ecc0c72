package bootstrap

import (
	"swimbooking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// Module wires the HTTP API.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	RedisModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)

// NotifierModule wires the outbox relay and the mail consumer.
var NotifierModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	BrokerModule,
	MailModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.NotifierModule,
)

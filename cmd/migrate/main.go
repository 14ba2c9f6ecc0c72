package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"swimbooking/internal/pkg/config"
	"swimbooking/internal/pkg/migrate"
)

func main() {
	dir := flag.String("dir", "migrations", "migration directory")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := migrate.Apply(ctx, *dir, dbCfg.BuildDSN())
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied", "applied", res.Applied, "current", res.Current, "target", res.Target)
}

package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/n-namstack/e-shopping-2024-sub003/internal/client/cli"
	"github.com/n-namstack/e-shopping-2024-sub003/internal/client/config"
	"github.com/n-namstack/e-shopping-2024-sub003/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.NewDefault(slog.LevelInfo)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}

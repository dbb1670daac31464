package main

import (
	"context"
	"fmt"
	"os"

	"github.com/NaumanGems/Nauman-gems/internal/app"
	"github.com/NaumanGems/Nauman-gems/internal/config"
	"github.com/NaumanGems/Nauman-gems/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.ServiceName, cfg.LogLevel)

	a := app.New(context.Background(), cfg, log)
	if err := a.Run(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

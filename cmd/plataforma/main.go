package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/ssdinvest/plataforma/internal/app"
	"github.com/ssdinvest/plataforma/internal/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	migrateOnly := flag.Bool("migrate", false, "run database migrations and exit")
	flag.Parse()

	cfg, errLoad := config.Load(*configPath)
	if errLoad != nil {
		log.Fatalf("load config: %v", errLoad)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *migrateOnly {
		if errMigrate := app.Migrate(ctx, *cfg); errMigrate != nil {
			log.Fatalf("migrate: %v", errMigrate)
		}
		return
	}

	if errRun := app.RunServer(ctx, *cfg); errRun != nil {
		log.Fatalf("server: %v", errRun)
	}
}

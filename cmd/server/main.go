package main

import (
	"context"
	"fmt"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory_api/internal/config"
	"github.com/Skotchmaster/inventory_api/internal/db"
	"github.com/Skotchmaster/inventory_api/internal/handlers"
	"github.com/Skotchmaster/inventory_api/internal/httperr"
	"github.com/Skotchmaster/inventory_api/internal/httpserver"
	"github.com/Skotchmaster/inventory_api/internal/logging"
	"github.com/Skotchmaster/inventory_api/internal/mykafka"
	"github.com/Skotchmaster/inventory_api/internal/service"
	"github.com/Skotchmaster/inventory_api/internal/validation"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel)

	gdb, err := db.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	producer := mykafka.NewProducer(cfg.KafkaBrokers)
	if producer != nil {
		defer producer.Close()
	} else {
		logger.Warn("KAFKA_BROKERS not set, domain events disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = httperr.ErrorHandler()
	e.Use(httpserver.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		DB:             gdb,
		AuthHandler:    &handlers.AuthHandler{DB: gdb, Tokens: &service.TokenService{DB: gdb}, Producer: producer},
		ProfileHandler: &handlers.ProfileHandler{DB: gdb},
		ProductHandler: &handlers.ProductHandler{DB: gdb, Producer: producer},
		SearchHandler:  &handlers.SearchHandler{DB: gdb},
	})

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.ServerPort)))
}

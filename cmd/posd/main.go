package main

import (
	"context"
	"fmt"
	"log"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/config"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/gateway/sheet"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/handler"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/inventory"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/middleware"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/store"
	"github.com/SuperScalpStudio/SuperSalonSystem/pkg/rabbitmq"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	sheetClient := sheet.NewClient(cfg.Sheet.URL, cfg.Sheet.SheetID)

	var events inventory.EventPublisher
	if cfg.Rabbit.URL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.Rabbit.URL, cfg.Rabbit.Exchange)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer pub.Close()
		events = pub
	}

	inventoryStore := store.NewInventoryStore()
	products, transactions, err := sheetClient.FetchInventory(context.Background())
	if err != nil {
		log.Printf("initial inventory fetch failed, starting empty: %v", err)
		products = nil
	}
	inventoryStore.Load(products, transactions)
	log.Printf("loaded %d products, %d transactions", len(products), len(transactions))

	svc := inventory.NewService(inventoryStore, sheetClient, events)

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	handler.NewInventoryHandler(svc).RegisterRoutes(e)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Printf("posd listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

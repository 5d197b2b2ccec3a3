package main

import (
	"context"
	"fmt"
	"log"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/config"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/gateway/auth"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/gateway/genai"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/gateway/sheet"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/handler"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/middleware"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/models"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/salon"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/session"
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

	var events salon.EventPublisher
	if cfg.Rabbit.URL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.Rabbit.URL, cfg.Rabbit.Exchange)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer pub.Close()
		events = pub
	}

	// Load the session collections once; a failed read starts the session
	// empty, exactly as a fresh sheet would.
	salonStore := store.NewSalonStore()
	ctx := context.Background()
	customers, err := sheetClient.FetchCustomers(ctx)
	if err != nil {
		log.Printf("initial customers fetch failed, starting empty: %v", err)
	}
	bookings, err := sheetClient.FetchBookings(ctx)
	if err != nil {
		log.Printf("initial bookings fetch failed, starting empty: %v", err)
	}
	salonStore.Load(customers, bookings)
	log.Printf("loaded %d customers, %d bookings", len(customers), len(bookings))

	svc := salon.NewService(salonStore, models.DefaultSettings(), sheetClient, events)

	authClient := auth.NewClient(cfg.Sheet.URL)
	sessions := session.NewStore(cfg.Session.Path)
	genaiClient := genai.NewClient(cfg.GenAI.APIKey, cfg.GenAI.TextModel, cfg.GenAI.ImageModel)

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

	handler.NewSalonHandler(svc).RegisterRoutes(e)
	handler.NewReportHandler(svc).RegisterRoutes(e)
	handler.NewAuthHandler(authClient, sessions).RegisterRoutes(e)
	handler.NewAdvisorHandler(genaiClient).RegisterRoutes(e)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Printf("salond listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

package main

import (
	"fmt"
	"log"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/config"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/middleware"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/sheetd"
	"github.com/SuperScalpStudio/SuperSalonSystem/pkg/database"
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

	db := database.NewPostgresDB(cfg.DSN())
	repo := sheetd.NewRepository(db)

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

	sheetd.NewHandler(repo).RegisterRoutes(e)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Printf("sheetd listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

package main

import (
	"log"

	"github.com/raslen-der12/event-api-sub000/config"
	"github.com/raslen-der12/event-api-sub000/internal/consumer"
	"github.com/raslen-der12/event-api-sub000/internal/handler"
	"github.com/raslen-der12/event-api-sub000/internal/middleware"
	"github.com/raslen-der12/event-api-sub000/internal/repository"
	"github.com/raslen-der12/event-api-sub000/internal/service"
	"github.com/raslen-der12/event-api-sub000/pkg/database"
	"github.com/raslen-der12/event-api-sub000/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ: publish registration lifecycle, consume profile sync
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	profileConsumer := consumer.NewProfileConsumer(db)
	profileConsumer.Start(msgs)

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	profileProvider := repository.NewProfileProvider(db)
	connectionRepo := repository.NewConnectionRepository(db)

	// Services
	eventSvc := service.NewEventService(eventRepo, sessionRepo, publisher)
	admissionSvc := service.NewAdmissionService(eventRepo, sessionRepo, registrationRepo, publisher)
	suggestSvc := service.NewSuggestService(profileProvider, connectionRepo)

	// Echo
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
		return c.JSON(200, map[string]string{"status": "ok", "service": "event-platform"})
	})

	handler.NewEventHandler(eventSvc).RegisterRoutes(e)
	handler.NewRegistrationHandler(admissionSvc).RegisterRoutes(e)
	handler.NewSuggestHandler(suggestSvc).RegisterRoutes(e)

	log.Printf("Event Platform starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

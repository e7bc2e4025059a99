package main

import (
	"context"
	analyticshandler "roombook/internal/analytics/handler"
	analyticsservice "roombook/internal/analytics/service"
	"roombook/internal/bookings/events"
	"roombook/internal/bookings/handler"
	"roombook/internal/bookings/repository"
	"roombook/internal/bookings/service"
	"roombook/internal/bookings/validator"
	"roombook/internal/health"
	roomhandler "roombook/internal/rooms/handler"
	roomrepository "roombook/internal/rooms/repository"
	roomservice "roombook/internal/rooms/service"
	"roombook/pkg/app"
	"roombook/pkg/config"
	"roombook/pkg/kafka"
	kafka_config "roombook/pkg/kafka/config"
	kafka_middleware "roombook/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetStorage()

	cfg.Log.Info("Starting Bookings service", "storage_driver", cfg.StorageDriver)
	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown(func(context.Context) { cfg.GracefulShutdown() })

	publisher := initPublisher(cfg, serverApp)
	bookingHandler, roomHandler, analyticsHandler := initServices(cfg, publisher)

	serverApp.SetApp(
		health.NewHandler(cfg.Client, cfg.Log),
		bookingHandler,
		roomHandler,
		analyticsHandler,
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) (*handler.BookingHandler, *roomhandler.RoomHandler, *analyticshandler.AnalyticsHandler) {
	bookingRepo, roomRepo := initRepositories(cfg)

	rooms := roomservice.NewRoomService(roomRepo, cfg)
	if cfg.SeedRoomsOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()
		if err := rooms.EnsureSeeded(ctx); err != nil {
			cfg.Log.Fatal("Failed to seed rooms", "error", err)
		}
	}

	bookingValidator := validator.NewBookingValidator(cfg.Log, service.MaxBookingDuration)
	bookings := service.NewBookingService(bookingRepo, rooms, bookingValidator, publisher, cfg)
	analytics := analyticsservice.NewAnalyticsService(bookings, rooms, cfg)

	cfg.Log.Info("Booking service initialized",
		"storage_driver", cfg.StorageDriver,
		"business_tz", cfg.BusinessTimeZone,
	)
	return handler.NewBookingHandler(bookings, cfg.Log),
		roomhandler.NewRoomHandler(rooms, cfg.Log),
		analyticshandler.NewAnalyticsHandler(analytics, cfg.Log)
}

func initRepositories(cfg *config.Config) (repository.BookingRepository, roomrepository.RoomRepository) {
	if cfg.StorageDriver == config.StoragePostgres {
		return repository.NewPostgresBookingRepository(cfg), roomrepository.NewPostgresRoomRepository(cfg)
	}
	return repository.NewMongoBookingRepository(cfg), roomrepository.NewMongoRoomRepository(cfg)
}

// initPublisher returns a Kafka-backed publisher when enabled. The producer is
// closed on shutdown after the HTTP server has drained.
func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return events.NopPublisher{}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.LogMessages {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}

	serverApp.OnShutdown(func(context.Context) {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})

	return events.NewKafkaPublisher(producer, ServiceName)
}

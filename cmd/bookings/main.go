package main

import (
	availabilityrepo "clinicbook/internal/availability/repository"
	availabilitysvc "clinicbook/internal/availability/service"
	"clinicbook/internal/bookings/handler"
	"clinicbook/internal/bookings/repository"
	"clinicbook/internal/bookings/service"
	"clinicbook/internal/bookings/validator"
	"clinicbook/pkg/app"
	"clinicbook/pkg/config"
	"clinicbook/pkg/kafka"
)

const ServiceName = "bookings"

// @title ClinicBook Bookings API
// @version 1.0
// @description API documentation for the Bookings microservice.
// @BasePath /
func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")
	bookingService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewBookingLockRepository(cfg)

	// Availability is resolved in-process against the shared deployment so
	// the conflict check runs inside the booking transaction.
	hoursRepo := availabilityrepo.NewMongoRecurringHoursRepository(cfg)
	overrideRepo := availabilityrepo.NewMongoDateOverrideRepository(cfg)
	resolver := availabilitysvc.NewResolverService(hoursRepo, overrideRepo, cfg)

	conflicts := service.NewConflictChecker(resolver, bookingRepo, cfg)

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		conflicts,
		bookingValidator,
		initPublisher(cfg),
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

func initPublisher(cfg *config.Config) service.EventPublisher {
	if !cfg.EventsEnabled {
		return nil
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaBookingTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
	}
	cfg.Log.Info("Booking events enabled", "topic", cfg.KafkaBookingTopic)
	return producer
}

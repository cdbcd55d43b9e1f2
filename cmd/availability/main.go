package main

import (
	"clinicbook/internal/availability/handler"
	"clinicbook/internal/availability/repository"
	"clinicbook/internal/availability/service"
	"clinicbook/internal/availability/validator"
	"clinicbook/pkg/app"
	"clinicbook/pkg/config"
)

const ServiceName = "availability"

// @title ClinicBook Availability API
// @version 1.0
// @description API documentation for the Availability microservice.
// @BasePath /
func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Availability service")
	hoursService, overrideService, resolverService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewHoursHandler(hoursService, cfg.Log),
		handler.NewOverrideHandler(overrideService, cfg.Log),
		handler.NewAvailabilityHandler(resolverService, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.HoursService, service.OverrideService, service.ResolverService) {
	availabilityValidator := validator.New(cfg.Log)
	hoursRepo := repository.NewMongoRecurringHoursRepository(cfg)
	overrideRepo := repository.NewMongoDateOverrideRepository(cfg)

	hoursService := service.NewHoursService(hoursRepo, availabilityValidator, cfg)
	overrideService := service.NewOverrideService(overrideRepo, availabilityValidator, cfg)
	resolverService := service.NewResolverService(hoursRepo, overrideRepo, cfg)

	cfg.Log.Info("Availability service initialized", "database", cfg.MongoDatabaseName)
	return hoursService, overrideService, resolverService
}

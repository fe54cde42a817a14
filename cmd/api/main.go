package main

import (
	"github.com/joho/godotenv"

	"tourbook/internal/bookings/events"
	bookinghandler "tourbook/internal/bookings/handler"
	bookingrepo "tourbook/internal/bookings/repository"
	bookingservice "tourbook/internal/bookings/service"
	bookingvalidator "tourbook/internal/bookings/validator"
	"tourbook/internal/guard"
	tourhandler "tourbook/internal/tours/handler"
	tourrepo "tourbook/internal/tours/repository"
	tourservice "tourbook/internal/tours/service"
	tourvalidator "tourbook/internal/tours/validator"
	userhandler "tourbook/internal/users/handler"
	userrepo "tourbook/internal/users/repository"
	userservice "tourbook/internal/users/service"
	uservalidator "tourbook/internal/users/validator"
	"tourbook/pkg/app"
	"tourbook/pkg/auth"
	"tourbook/pkg/config"
	"tourbook/pkg/contracts"
	"tourbook/pkg/kafka"
)

const ServiceName = "api"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting tourbook API")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize token manager", "error", err)
	}
	handlers := initHandlers(cfg, tokens)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, tokens, handlers...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config, tokens *auth.TokenManager) []contracts.Handler {
	users := userrepo.NewMongoUserRepository(cfg)
	tours := tourrepo.NewMongoTourRepository(cfg)
	bookings := bookingrepo.NewMongoBookingRepository(cfg)

	authGuard := guard.New(users, tours)

	userService := userservice.NewUserService(users, uservalidator.NewUserValidator(cfg.Log), tokens, cfg)
	tourService := tourservice.NewTourService(tours, authGuard, tourvalidator.NewTourValidator(cfg.Log), cfg)

	publisher := initPublisher(cfg)
	bookingService := bookingservice.NewBookingService(
		bookings,
		authGuard,
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		userhandler.NewAuthHandler(userService, cfg.Log),
		tourhandler.NewTourHandler(tourService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
	}
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("No Kafka brokers configured, booking events disabled")
		return events.NopPublisher{}
	}

	producer, err := kafka.NewProducer(kafka.Config{Brokers: cfg.KafkaBrokers}, cfg.KafkaBookingTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Booking event publisher initialized", "topic", cfg.KafkaBookingTopic)
	return events.NewKafkaPublisher(producer, cfg.Log)
}

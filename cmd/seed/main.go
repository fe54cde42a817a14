package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	tourrepo "tourbook/internal/tours/repository"
	userserrors "tourbook/internal/users/errors"
	userrepo "tourbook/internal/users/repository"
	"tourbook/pkg/config"
	"tourbook/pkg/model"
)

const JobName = "seed"

const seedOperatorEmail = "guide@adventure.com"

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	cfg.Log.Info("Starting seed job")
	defer cfg.GracefulShutdown()

	users := userrepo.NewMongoUserRepository(cfg)
	tours := tourrepo.NewMongoTourRepository(cfg)

	operator, err := ensureOperator(ctx, cfg, users)
	if err != nil {
		cfg.Log.Fatal("Failed to ensure seed operator", "error", err)
	}

	count, err := tours.Count(ctx)
	if err != nil {
		cfg.Log.Fatal("Failed to count tours", "error", err)
	}
	if count > 0 {
		cfg.Log.Info("Tours already present, skipping seed", "count", count)
		return
	}

	for _, tour := range seedTours(operator) {
		if err := tours.Create(ctx, tour); err != nil {
			cfg.Log.Fatal("Failed to seed tour", "title", tour.Title, "error", err)
		}
		cfg.Log.Info("Seeded tour", "title", tour.Title, "location", tour.Location)
	}

	cfg.Log.Info("Seed completed")
}

func ensureOperator(ctx context.Context, cfg *config.Config, users userrepo.UserRepository) (*model.User, error) {
	operator, err := users.FindByEmail(ctx, seedOperatorEmail)
	if err == nil {
		cfg.Log.Info("Seed operator already exists", "email", seedOperatorEmail)
		return operator, nil
	}
	if !errors.Is(err, userserrors.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	operator = &model.User{
		Name:         "Mountain Guide",
		Email:        seedOperatorEmail,
		PasswordHash: string(hash),
		Role:         model.RoleOperator,
	}
	if err := users.Create(ctx, operator); err != nil {
		return nil, err
	}
	cfg.Log.Info("Seed operator created", "email", seedOperatorEmail)
	return operator, nil
}

func seedTours(operator *model.User) []*model.Tour {
	now := time.Now().UTC()
	week := 7 * 24 * time.Hour

	return []*model.Tour{
		{
			OperatorID:    operator.ID,
			OperatorName:  operator.Name,
			Title:         "Misty Mountain Hike",
			Description:   "Start your morning above the clouds with a gentle hike to a hidden alpine lake.",
			Price:         129.00,
			Location:      "Aspen, USA",
			MaxCapacity:   14,
			DurationHours: 5,
			AvailableFrom: now.Add(1 * week),
		},
		{
			OperatorID:    operator.ID,
			OperatorName:  operator.Name,
			Title:         "Rainforest River Kayak",
			Description:   "Glide through lush mangroves while spotting parrots, sloths and river dolphins.",
			Price:         189.00,
			Location:      "Leticia, Colombia",
			MaxCapacity:   10,
			DurationHours: 4,
			AvailableFrom: now.Add(2 * week),
		},
		{
			OperatorID:    operator.ID,
			OperatorName:  operator.Name,
			Title:         "Volcanic Sunset Jeep Ride",
			Description:   "Bounce across black-sand trails before sharing a picnic on the caldera rim.",
			Price:         159.00,
			Location:      "Santorini, Greece",
			MaxCapacity:   12,
			DurationHours: 3,
			AvailableFrom: now.Add(3 * week),
		},
		{
			OperatorID:    operator.ID,
			OperatorName:  operator.Name,
			Title:         "Nordic Fjord Cycling",
			Description:   "Cycle quiet coastal roads, hop ferries between islands and taste local smoked salmon.",
			Price:         210.00,
			Location:      "Ålesund, Norway",
			MaxCapacity:   8,
			DurationHours: 6,
			AvailableFrom: now.Add(4 * week),
		},
		{
			OperatorID:    operator.ID,
			OperatorName:  operator.Name,
			Title:         "Red Desert Stars",
			Description:   "An overnight camel caravan with astronomer-led stargazing in the quiet dunes.",
			Price:         275.00,
			Location:      "Merzouga, Morocco",
			MaxCapacity:   6,
			DurationHours: 12,
			AvailableFrom: now.Add(5 * week),
		},
	}
}

package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/adapters/database"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/adapters/search"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/infrastructure/clients/postgres"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/infrastructure/clients/typesense"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	var searchRepo *search.TypesenseAdapter
	if err == nil {
		searchRepo = search.NewTypesenseAdapter(tsClient)
		searchRepo.InitSchema(context.Background())
	}

	turfRepo := database.NewTurfAdapter(pgClient)
	slotRepo := database.NewSlotAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				waitlist_entries,
				notifications,
				bookings,
				time_slots,
				turfs,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Seed users (one owner, one player; both use the password "playnest1")
	hash, err := bcrypt.GenerateFromPassword([]byte("playnest1"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	owner := entities.User{
		ID:           uuid.New().String(),
		Email:        "owner@playnest.in",
		PasswordHash: string(hash),
		Name:         "Vikram Thakre",
		Phone:        "+919823011223",
		Role:         entities.RoleOwner,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	player := entities.User{
		ID:           uuid.New().String(),
		Email:        "player@playnest.in",
		PasswordHash: string(hash),
		Name:         "Rohan Deshmukh",
		Phone:        "+919876543210",
		Role:         entities.RolePlayer,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	for _, u := range []entities.User{owner, player} {
		if err := userRepo.Create(ctx, &u); err != nil {
			log.Printf("Failed to create user %s: %v", u.Email, err)
		}
	}

	// 2. Seed turfs around Nagpur
	turfs := []entities.Turf{
		{
			ID:          uuid.New().String(),
			OwnerID:     owner.ID,
			Name:        "Greenfield Arena",
			Description: "5-a-side football turf with floodlights and artificial grass",
			Address: entities.Address{
				Street: "WHC Road, Dharampeth", City: "Nagpur", State: "Maharashtra", ZipCode: "440010", Country: "India",
			},
			Location:    entities.Location{Latitude: 21.1355, Longitude: 79.0625},
			Sports:      []string{"football", "cricket"},
			Amenities:   []string{"floodlights", "parking", "changing_room", "drinking_water"},
			HourlyPrice: 1000,
			Rating:      4.6,
			ReviewCount: 212,
			PhoneNumber: "+917123456780",
			IsActive:    true,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			ID:          uuid.New().String(),
			OwnerID:     owner.ID,
			Name:        "Sitabuldi Sports Hub",
			Description: "Rooftop box cricket and futsal in the heart of the city",
			Address: entities.Address{
				Street: "Central Avenue, Sitabuldi", City: "Nagpur", State: "Maharashtra", ZipCode: "440012", Country: "India",
			},
			Location:    entities.Location{Latitude: 21.1458, Longitude: 79.0882},
			Sports:      []string{"cricket", "futsal"},
			Amenities:   []string{"floodlights", "cafeteria", "first_aid"},
			HourlyPrice: 1200,
			Rating:      4.4,
			ReviewCount: 158,
			PhoneNumber: "+917123456781",
			IsActive:    true,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			ID:          uuid.New().String(),
			OwnerID:     owner.ID,
			Name:        "Wardha Road Sports Park",
			Description: "Two full-size football turfs and a badminton hall",
			Address: entities.Address{
				Street: "Wardha Road, Somalwada", City: "Nagpur", State: "Maharashtra", ZipCode: "440025", Country: "India",
			},
			Location:    entities.Location{Latitude: 21.0922, Longitude: 79.0511},
			Sports:      []string{"football", "badminton"},
			Amenities:   []string{"floodlights", "parking", "coaching"},
			HourlyPrice: 800,
			Rating:      4.2,
			ReviewCount: 96,
			PhoneNumber: "+917123456782",
			IsActive:    true,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			ID:          uuid.New().String(),
			OwnerID:     owner.ID,
			Name:        "Koradi Turf Club",
			Description: "Open-air cricket turf near Koradi Road with evening floodlights",
			Address: entities.Address{
				Street: "Koradi Road, Mankapur", City: "Nagpur", State: "Maharashtra", ZipCode: "440030", Country: "India",
			},
			Location:    entities.Location{Latitude: 21.2074, Longitude: 79.0888},
			Sports:      []string{"cricket"},
			Amenities:   []string{"floodlights", "parking"},
			HourlyPrice: 600,
			Rating:      4.0,
			ReviewCount: 64,
			PhoneNumber: "+917123456783",
			IsActive:    true,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
	}

	for i := range turfs {
		turf := &turfs[i]
		if err := turfRepo.Create(ctx, turf); err != nil {
			log.Printf("Failed to create turf %s: %v", turf.Name, err)
			continue
		}
		if searchRepo != nil {
			if err := searchRepo.Index(ctx, turf); err != nil {
				log.Printf("Failed to index turf %s: %v", turf.Name, err)
			}
		}
		log.Printf("Seeded turf %s", turf.Name)
	}

	// 3. Seed hourly slots, 6 AM to 11 PM for the next 7 days
	now := time.Now()
	slotCount := 0
	for _, turf := range turfs {
		for day := 0; day < 7; day++ {
			date := now.AddDate(0, 0, day)
			for hour := 6; hour < 23; hour++ {
				start := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, time.Local)
				if start.Before(now) {
					continue
				}

				price := turf.HourlyPrice
				// Evening slots carry a peak surcharge
				if hour >= 18 {
					price = price * 1.25
				}

				slot := entities.TimeSlot{
					ID:          uuid.New().String(),
					TurfID:      turf.ID,
					StartTime:   start,
					EndTime:     start.Add(time.Hour),
					Price:       price,
					IsAvailable: true,
					CreatedAt:   time.Now(),
					UpdatedAt:   time.Now(),
				}
				if err := slotRepo.Create(ctx, &slot); err != nil {
					log.Printf("Failed to create slot for %s at %s: %v", turf.Name, start, err)
					continue
				}
				slotCount++
			}
		}
	}

	log.Printf("Seeded %d users, %d turfs, %d slots", 2, len(turfs), slotCount)
}

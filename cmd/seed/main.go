package main

import (
	"context"
	"log"
	"time"

	"github.com/lifeline-health/bedfinder/internal/adapters/database"
	"github.com/lifeline-health/bedfinder/internal/domain/entities"
	"github.com/lifeline-health/bedfinder/internal/infrastructure/clients/postgres"
	"github.com/lifeline-health/bedfinder/pkg/config"
	apperrors "github.com/lifeline-health/bedfinder/pkg/errors"
)

func intPtr(v int) *int { return &v }

// seedFacilities is the initial Lucknow hospital network
func seedFacilities(now time.Time) []*entities.Facility {
	return []*entities.Facility{
		{
			ID:                "h1",
			Name:              "Sanjay Gandhi Postgraduate Institute (SGPGI)",
			Address:           "Raebareli Rd, Lucknow, Uttar Pradesh",
			Location:          entities.Location{Latitude: 26.7431, Longitude: 80.9385},
			Contact:           "0522 266 8700",
			EstablishmentYear: intPtr(1983),
			Achievements: []string{
				"Ranked among the top medical institutes in India by NIRF.",
				"Pioneer in Organ Transplant and Tertiary Care in North India.",
				"First public hospital to implement a comprehensive HIS (Hospital Information System).",
			},
			GeneralBeds: entities.BedPool{Total: 200, Available: 15},
			ICUBeds:     entities.BedPool{Total: 50, Available: 4},
			LastUpdated: now.Add(-5 * time.Minute),
			CreatedAt:   now,
		},
		{
			ID:                "h2",
			Name:              "King George's Medical University (KGMU)",
			Address:           "Shah Mina Rd, Chowk, Lucknow",
			Location:          entities.Location{Latitude: 26.8687, Longitude: 80.9168},
			Contact:           "0522 225 7450",
			EstablishmentYear: intPtr(1905),
			Achievements: []string{
				"One of the oldest and most prestigious medical universities in India.",
				"Heritage campus with over 100 years of medical excellence.",
				"Largest public sector medical infrastructure in Uttar Pradesh.",
			},
			GeneralBeds: entities.BedPool{Total: 500, Available: 0},
			ICUBeds:     entities.BedPool{Total: 100, Available: 2},
			LastUpdated: now.Add(-12 * time.Minute),
			CreatedAt:   now,
		},
		{
			ID:                "h3",
			Name:              "Medanta Hospital Lucknow",
			Address:           "Sector A, Pocket 1, Sushant Golf City",
			Location:          entities.Location{Latitude: 26.7725, Longitude: 81.0028},
			Contact:           "0522 450 5050",
			EstablishmentYear: intPtr(2019),
			Achievements: []string{
				"State-of-the-art super specialty facility with 1000+ beds capacity.",
				"World-class Robotic Surgery and Cardiac Science center.",
				"JCI and NABH accredited international healthcare standards.",
			},
			GeneralBeds: entities.BedPool{Total: 300, Available: 85},
			ICUBeds:     entities.BedPool{Total: 80, Available: 12},
			LastUpdated: now.Add(-2 * time.Minute),
			CreatedAt:   now,
		},
		{
			ID:                "h4",
			Name:              "Apollomedics Super Speciality Hospital",
			Address:           "Kanpur - Lucknow Rd, Sector B, Bargawan",
			Location:          entities.Location{Latitude: 26.7891, Longitude: 80.8943},
			Contact:           "0522 678 8888",
			EstablishmentYear: intPtr(2019),
			Achievements: []string{
				"Advanced Trauma and emergency care hub in Lucknow.",
				"Multi-disciplinary approach for complex oncology and neurology cases.",
				"Digital healthcare integration with Apollo's global network.",
			},
			GeneralBeds: entities.BedPool{Total: 150, Available: 8},
			ICUBeds:     entities.BedPool{Total: 35, Available: 1},
			LastUpdated: now.Add(-30 * time.Minute),
			CreatedAt:   now,
		},
		{
			ID:                "h5",
			Name:              "Ram Manohar Lohia Institute (RMLIMS)",
			Address:           "Vibhuti Khand, Gomti Nagar, Lucknow",
			Location:          entities.Location{Latitude: 26.8624, Longitude: 81.0020},
			Contact:           "0522 669 2000",
			EstablishmentYear: intPtr(2006),
			Achievements: []string{
				"Premier autonomous institute of the Government of Uttar Pradesh.",
				"Leader in specialized Neurosciences and Cardiology in Gomti Nagar.",
				"Rapidly expanding research wing and postgraduate teaching facility.",
			},
			GeneralBeds: entities.BedPool{Total: 250, Available: 5},
			ICUBeds:     entities.BedPool{Total: 40, Available: 0},
			LastUpdated: now.Add(-8 * time.Minute),
			CreatedAt:   now,
		},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()

	// Query metrics are not collected for one-shot seeding
	repo := database.NewFacilityAdapter(pgClient, nil)
	ctx := context.Background()
	now := time.Now().UTC()

	seeded := 0
	for _, facility := range seedFacilities(now) {
		if _, err := repo.GetByID(ctx, facility.ID); err == nil {
			log.Printf("Facility %s (%s) already exists, skipping", facility.ID, facility.Name)
			continue
		} else if !apperrors.IsNotFound(err) {
			log.Fatalf("Failed to check facility %s: %v", facility.ID, err)
		}

		if err := repo.Create(ctx, facility); err != nil {
			log.Fatalf("Failed to seed facility %s: %v", facility.ID, err)
		}
		log.Printf("Seeded facility %s (%s)", facility.ID, facility.Name)
		seeded++
	}

	log.Printf("Seeding complete: %d facilities created", seeded)
}

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"restate/internal/config"
	"restate/internal/model"
	"restate/internal/repository"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func sampleProperties(now time.Time) []model.Property {
	types := model.PropertyTypes
	streets := []string{"Maple Ave", "Harbor Rd", "Sunset Blvd", "Orchard Ln", "Cedar St", "Lakeview Dr", "Market St"}
	coords := []string{
		"37.7749, -122.4194",
		"34.0522, -118.2437",
		"40.7128, -74.0060",
		"47.6062, -122.3321",
		"25.7617, -80.1918",
		"30.2672, -97.7431",
		"41.8781, -87.6298",
	}

	var properties []model.Property
	for i := 0; i < 21; i++ {
		t := types[i%len(types)]
		properties = append(properties, model.Property{
			ID:          fmt.Sprintf("seed-%03d", i+1),
			Name:        fmt.Sprintf("%s %s %d", []string{"Luxury", "Modern", "Cozy"}[i%3], t, i/len(types)+1),
			Address:     fmt.Sprintf("%d %s", 100+i*7, streets[i%len(streets)]),
			Type:        t,
			Price:       float64(150000 + (i%9)*85000),
			Area:        float64(800 + (i%8)*450),
			Bedrooms:    1 + i%5,
			Bathrooms:   1 + i%3,
			Rating:      floatPtr(3.5 + float64(i%4)*0.4),
			Image:       strPtr(fmt.Sprintf("https://images.example.com/properties/%03d.jpg", i+1)),
			Geolocation: strPtr(coords[i%len(coords)]),
			CreatedAt:   now.Add(-time.Duration(i) * 24 * time.Hour),
		})
	}
	return properties
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	repo, err := repository.NewPostgresRepository(cfg.Database.DSN(), cfg.Database.MaxOpen, cfg.Database.MaxIdle)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := repo.UpsertProperties(ctx, sampleProperties(time.Now()))
	if err != nil {
		log.Fatalf("Failed to seed properties: %v", err)
	}
	log.Printf("✅ Seeded %d properties", n)
}

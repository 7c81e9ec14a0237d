package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Property represents a property listing record
type Property struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Address     string    `json:"address" db:"address"`
	Type        string    `json:"type" db:"type"`
	Price       float64   `json:"price" db:"price"`
	Area        float64   `json:"area" db:"area"`
	Bedrooms    int       `json:"bedrooms" db:"bedrooms"`
	Bathrooms   int       `json:"bathrooms" db:"bathrooms"`
	Rating      *float64  `json:"rating,omitempty" db:"rating"`
	Image       *string   `json:"image,omitempty" db:"image"`
	Geolocation *string   `json:"geolocation,omitempty" db:"geolocation"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Coordinates is a parsed latitude/longitude pair
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PropertyDetail is a property with its parsed map location
type PropertyDetail struct {
	Property
	Coordinates *Coordinates `json:"coordinates"`
}

// NewPropertyDetail builds the detail view, dropping unparseable locations
func NewPropertyDetail(p Property) PropertyDetail {
	detail := PropertyDetail{Property: p}
	if p.Geolocation != nil {
		if coords, ok := ParseGeolocation(*p.Geolocation); ok {
			detail.Coordinates = &coords
		}
	}
	return detail
}

// ParseGeolocation parses a "lat, lng" string.
// It returns false for anything that is not a valid coordinate pair.
func ParseGeolocation(s string) (Coordinates, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinates{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, false
	}

	if math.IsNaN(lat) || math.IsNaN(lng) {
		return Coordinates{}, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Coordinates{}, false
	}
	return Coordinates{Latitude: lat, Longitude: lng}, true
}

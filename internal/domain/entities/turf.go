package entities

import (
	"time"

	"github.com/lib/pq"
)

// Turf represents a bookable sports facility
type Turf struct {
	ID          string         `json:"id" db:"id"`
	OwnerID     string         `json:"owner_id" db:"owner_id"`
	Name        string         `json:"name" db:"name"`
	Description string         `json:"description" db:"description"`
	Address     Address        `json:"address" db:"-"`
	Location    Location       `json:"location" db:"-"`
	Sports      pq.StringArray `json:"sports" db:"sports"`
	Amenities   pq.StringArray `json:"amenities" db:"amenities"`
	HourlyPrice float64        `json:"hourly_price" db:"hourly_price"`
	Rating      float64        `json:"rating" db:"rating"`
	ReviewCount int            `json:"review_count" db:"review_count"`
	Images      pq.StringArray `json:"images,omitempty" db:"images"`
	PhoneNumber string         `json:"phone_number" db:"phone_number"`
	IsActive    bool           `json:"is_active" db:"is_active"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// Address represents a physical address
type Address struct {
	Street  string `json:"street" db:"street"`
	City    string `json:"city" db:"city"`
	State   string `json:"state" db:"state"`
	ZipCode string `json:"zip_code" db:"zip_code"`
	Country string `json:"country" db:"country"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// TurfSearchResult is a turf enriched with proximity data for a caller
type TurfSearchResult struct {
	Turf          *Turf          `json:"turf"`
	DistanceKm    float64        `json:"distance_km"`
	TravelMinutes map[string]int `json:"travel_minutes,omitempty"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Vehicle struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	VehicleID   string             `bson:"vehicleID" json:"id"`
	Name        string             `bson:"name" json:"name"` // unique
	Brand       string             `bson:"brand" json:"brand"`
	Type        string             `bson:"type" json:"type"` // SEDAN, SUV, HATCHBACK, TRUCK, VAN, BIKE, SCOOTER
	PricePerDay float64            `bson:"pricePerDay" json:"pricePerDay"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Status      string             `bson:"status" json:"status"` // AVAILABLE, BOOKED, MAINTENANCE
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Features    []string           `bson:"features,omitempty" json:"features,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

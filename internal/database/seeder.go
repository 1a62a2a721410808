package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wheelio/internal/auth"
	"wheelio/internal/models"
)

// SeedAdminUser upserts the bootstrap admin by email. Running it on every
// start is safe; an existing admin is left untouched.
func SeedAdminUser(db *mongo.Database) error {
	const adminEmail = "admin@wheelio.io"

	hashedPassword, err := auth.HashPassword("adminpassword")
	if err != nil {
		return err
	}

	now := time.Now()
	admin := models.User{
		UserID:    fmt.Sprintf("USR-%s", uuid.New().String()[:8]),
		Email:     adminEmail,
		Password:  hashedPassword,
		FullName:  "Wheelio Admin",
		Role:      "ADMIN",
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = db.Collection("users").UpdateOne(
		context.Background(),
		bson.M{"email": adminEmail},
		bson.M{"$setOnInsert": admin},
		options.Update().SetUpsert(true),
	)
	return err
}

// SeedVehicleCatalog upserts the starter fleet by vehicle name.
func SeedVehicleCatalog(db *mongo.Database) error {
	catalog := []models.Vehicle{
		{Name: "Swift Hatch 01", Brand: "Suzuki", Type: "HATCHBACK", PricePerDay: 45, Location: "Downtown", Status: "AVAILABLE"},
		{Name: "City Cruiser 02", Brand: "Honda", Type: "SEDAN", PricePerDay: 60, Location: "Airport", Status: "AVAILABLE"},
		{Name: "Trail Runner 03", Brand: "Toyota", Type: "SUV", PricePerDay: 95, Location: "Downtown", Status: "AVAILABLE"},
		{Name: "Cargo Max 04", Brand: "Ford", Type: "VAN", PricePerDay: 110, Location: "Harbor", Status: "AVAILABLE"},
		{Name: "Metro Scoot 05", Brand: "Vespa", Type: "SCOOTER", PricePerDay: 18, Location: "Old Town", Status: "AVAILABLE"},
	}

	collection := db.Collection("vehicles")
	for _, v := range catalog {
		now := time.Now()
		v.VehicleID = fmt.Sprintf("VEH-%s", uuid.New().String()[:8])
		v.CreatedAt = now
		v.UpdatedAt = now

		_, err := collection.UpdateOne(
			context.Background(),
			bson.M{"name": v.Name},
			bson.M{"$setOnInsert": v},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

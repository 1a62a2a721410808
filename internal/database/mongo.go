package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"wheelio/config"
)

// Connect opens the Mongo connection and verifies it with a ping. Callers
// treat a returned error as fatal: a service without its store cannot start.
func Connect(cfg config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	return client.Database(cfg.DBName), nil
}

func createUniqueIndex(db *mongo.Database, collection, field string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// EnsureUserIndexes backs the 409s of the user service: duplicate email,
// duplicate license number, and one driver profile per user.
func EnsureUserIndexes(db *mongo.Database) error {
	if err := createUniqueIndex(db, "users", "email"); err != nil {
		return err
	}
	if err := createUniqueIndex(db, "driver_profiles", "licenseNumber"); err != nil {
		return err
	}
	return createUniqueIndex(db, "driver_profiles", "userID")
}

func EnsureVehicleIndexes(db *mongo.Database) error {
	return createUniqueIndex(db, "vehicles", "name")
}

func EnsurePaymentIndexes(db *mongo.Database) error {
	return createUniqueIndex(db, "payments", "externalPaymentID")
}

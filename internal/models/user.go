package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID    string             `bson:"userID" json:"id"`
	Email     string             `bson:"email" json:"email"` // stored lowercase, unique
	Password  string             `bson:"password" json:"-"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Role      string             `bson:"role" json:"role"` // ADMIN, DRIVER, USER, STAFF
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	City      string             `bson:"city,omitempty" json:"city,omitempty"`
	Avatar    string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DriverProfile is keyed by the user it belongs to (one profile per user).
type DriverProfile struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID        string             `bson:"userID" json:"userId"`
	LicenseNumber string             `bson:"licenseNumber" json:"licenseNumber"` // unique
	Rating        float64            `bson:"rating" json:"rating"`
	Status        string             `bson:"status" json:"status"` // ACTIVE, ON_TRIP, INACTIVE
	Documents     map[string]string  `bson:"documents,omitempty" json:"documents,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

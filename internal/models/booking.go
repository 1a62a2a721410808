package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	BookingID     string             `bson:"bookingID" json:"id"`
	UserID        string             `bson:"userID" json:"userId"`
	VehicleID     string             `bson:"vehicleID" json:"vehicleId"`
	DriverID      string             `bson:"driverID,omitempty" json:"driverId,omitempty"`
	StartDate     time.Time          `bson:"startDate" json:"startDate"`
	EndDate       time.Time          `bson:"endDate" json:"endDate"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	Status        string             `bson:"status" json:"status"`               // PENDING, CONFIRMED, COMPLETED, CANCELLED
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"` // PENDING, PAID, REFUNDED
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EnrichedBooking replaces the foreign keys with the referenced documents.
// A nil field means the reference did not resolve (deleted entity or
// unreachable collaborator); the booking's own fields are always present.
type EnrichedBooking struct {
	Booking `bson:",inline"`
	User    *User          `json:"user"`
	Vehicle *Vehicle       `json:"vehicle"`
	Driver  *DriverProfile `json:"driver,omitempty"`
}

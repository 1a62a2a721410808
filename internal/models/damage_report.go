package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DamageReport struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ReportID          string             `bson:"reportID" json:"id"`
	VehicleID         string             `bson:"vehicleID" json:"vehicleId"`
	ReportedByID      string             `bson:"reportedByID" json:"reportedById"`
	Description       string             `bson:"description" json:"description"`
	Images            []string           `bson:"images,omitempty" json:"images,omitempty"` // file service ids
	Severity          string             `bson:"severity,omitempty" json:"severity,omitempty"` // LOW, MEDIUM, HIGH, CRITICAL or unset
	Status            string             `bson:"status" json:"status"` // OPEN, INVESTIGATING, ESTIMATED, RESOLVED, PAID
	EstimatedCost     float64            `bson:"estimatedCost" json:"estimatedCost"`
	ExternalPaymentID string             `bson:"externalPaymentID,omitempty" json:"externalPaymentId,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type EnrichedDamageReport struct {
	DamageReport `bson:",inline"`
	Vehicle      *Vehicle `json:"vehicle"`
	ReportedBy   *User    `json:"reportedBy"`
}

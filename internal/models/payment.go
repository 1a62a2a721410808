package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Payment struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	PaymentID         string             `bson:"paymentID" json:"id"`
	BookingID         string             `bson:"bookingID" json:"bookingId"`
	ExternalPaymentID string             `bson:"externalPaymentID" json:"externalPaymentId"` // unique, assigned by the processor
	ExternalOrderID   string             `bson:"externalOrderID,omitempty" json:"externalOrderId,omitempty"`
	ExternalSignature string             `bson:"externalSignature,omitempty" json:"externalSignature,omitempty"`
	Amount            float64            `bson:"amount" json:"amount"`
	Method            string             `bson:"method,omitempty" json:"method,omitempty"`
	Status            string             `bson:"status" json:"status"` // CREATED, SUCCESS, FAILED, REFUNDED
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type EnrichedPayment struct {
	Payment `bson:",inline"`
	Booking *Booking `json:"booking"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileBlob is the metadata document; the bytes live in S3 under the file id.
type FileBlob struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	FileID      string             `bson:"fileID" json:"id"`
	Name        string             `bson:"name" json:"name"`
	ContentType string             `bson:"contentType" json:"contentType"`
	Size        int64              `bson:"size" json:"size"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is a document in the "items" collection. OwnerID is the hex id of the
// user that created it; every lookup filters on it.
type Item struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	OwnerID     string             `bson:"ownerId" json:"ownerId"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

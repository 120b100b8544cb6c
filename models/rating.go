package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating holds one user's 1-5 score for a book. At most one rating per
// (user, book) pair; the store enforces this with a unique index.
type Rating struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	BookID    primitive.ObjectID `bson:"book" json:"book"`
	Value     int                `bson:"value" json:"value"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

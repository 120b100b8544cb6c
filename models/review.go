package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookID    primitive.ObjectID `bson:"bookId" json:"bookId"`
	UserID    primitive.ObjectID `bson:"userId" json:"-"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Reviewer is the denormalized user reference attached to a review on read.
type Reviewer struct {
	ID        primitive.ObjectID `json:"id"`
	Firstname string             `json:"firstname"`
	Lastname  string             `json:"lastname"`
}

// ReviewWithUser is a review with its reviewer's display name resolved.
type ReviewWithUser struct {
	Review
	User Reviewer `json:"userId"`
}

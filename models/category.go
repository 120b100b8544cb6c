package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category is owned by a sibling module; this service only reads it for
// existence checks and reference population.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
}

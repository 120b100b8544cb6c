package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Like records "this user likes this book"; the count of matching
// documents is a book's like count. Written by a sibling module.
type Like struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookID primitive.ObjectID `bson:"bookId" json:"bookId"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
}

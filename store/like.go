package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeCountForBook counts like documents referencing the book.
func (db *DB) LikeCountForBook(ctx context.Context, bookID primitive.ObjectID) (int64, error) {
	return db.Likes().CountDocuments(ctx, bson.M{"bookId": bookID})
}

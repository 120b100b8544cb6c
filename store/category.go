package store

import (
	"context"

	"bookcatalog/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CategoryByID returns the category, or nil when it does not exist.
// Categories are owned by a sibling module; this service only reads them.
func (db *DB) CategoryByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	err := db.Categories().FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

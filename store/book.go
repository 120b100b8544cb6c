package store

import (
	"context"

	"bookcatalog/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertBook(ctx context.Context, book *models.Book) (primitive.ObjectID, error) {
	res, err := db.Books().InsertOne(ctx, book)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	var book models.Book
	err := db.Books().FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (db *DB) BooksByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]models.Book, error) {
	cur, err := db.Books().Find(ctx, bson.M{"category": categoryID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var books []models.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// ToggleBookLike flips the like flag in a single pipeline update, so
// concurrent toggles cannot lose a write. Returns the updated book, or
// nil when no book matched.
func (db *DB) ToggleBookLike(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	update := bson.A{
		bson.M{"$set": bson.M{"like": bson.M{"$not": "$like"}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var book models.Book
	err := db.Books().FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBooksByCategory applies the given fields to every book in the
// category. Callers are expected to have allowlisted the fields already.
func (db *DB) UpdateBooksByCategory(ctx context.Context, categoryID primitive.ObjectID, fields bson.M) (int64, error) {
	res, err := db.Books().UpdateMany(ctx, bson.M{"category": categoryID}, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (db *DB) DeleteBooksByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	res, err := db.Books().DeleteMany(ctx, bson.M{"category": categoryID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

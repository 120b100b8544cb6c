package store

import (
	"context"

	"bookcatalog/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewsForBook returns all reviews for a book with each reviewer's
// first/last name resolved from the users collection in one batched fetch.
func (db *DB) ReviewsForBook(ctx context.Context, bookID primitive.ObjectID) ([]models.ReviewWithUser, error) {
	cur, err := db.Reviews().Find(ctx, bson.M{"bookId": bookID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var reviews []models.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return []models.ReviewWithUser{}, nil
	}

	userIDs := make([]primitive.ObjectID, 0, len(reviews))
	seen := make(map[primitive.ObjectID]bool, len(reviews))
	for _, rev := range reviews {
		if !seen[rev.UserID] {
			seen[rev.UserID] = true
			userIDs = append(userIDs, rev.UserID)
		}
	}
	users, err := db.usersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.ReviewWithUser, 0, len(reviews))
	for _, rev := range reviews {
		withUser := models.ReviewWithUser{Review: rev}
		if u, ok := users[rev.UserID]; ok {
			withUser.User = models.Reviewer{ID: u.ID, Firstname: u.Firstname, Lastname: u.Lastname}
		} else {
			withUser.User = models.Reviewer{ID: rev.UserID}
		}
		out = append(out, withUser)
	}
	return out, nil
}

func (db *DB) usersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	cur, err := db.Users().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

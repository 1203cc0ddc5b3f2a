package mongo

import (
	"context"
	"time"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReviewRepository struct {
	collection *mongo.Collection
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	now := time.Now()
	review.CreatedAt, review.UpdatedAt = now, now
	res, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return translate(err)
	}
	review.ID = insertedID(res)
	return nil
}

func (r *ReviewRepository) FindAll(ctx context.Context) ([]models.Review, error) {
	return findAll[models.Review](ctx, r.collection, bson.M{}, newestFirst())
}

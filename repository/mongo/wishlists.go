package mongo

import (
	"context"
	"time"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type WishlistRepository struct {
	collection *mongo.Collection
}

func (r *WishlistRepository) Add(ctx context.Context, item *models.WishlistItem) error {
	item.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return translate(err)
	}
	item.ID = insertedID(res)
	return nil
}

func (r *WishlistRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.WishlistItem, error) {
	return findAll[models.WishlistItem](ctx, r.collection, bson.M{"user": userID}, newestFirst())
}

func (r *WishlistRepository) Remove(ctx context.Context, userID, productID primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"user": userID, "product": productID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}

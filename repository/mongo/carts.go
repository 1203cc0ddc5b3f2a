package mongo

import (
	"context"
	"time"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CartRepository struct {
	collection *mongo.Collection
}

func (r *CartRepository) Create(ctx context.Context, item *models.CartItem) error {
	now := time.Now()
	item.CreatedAt, item.UpdatedAt = now, now
	res, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return translate(err)
	}
	item.ID = insertedID(res)
	return nil
}

func (r *CartRepository) FindByID(ctx context.Context, id primitive.ObjectID) (item models.CartItem, err error) {
	err = r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	return item, translate(err)
}

func (r *CartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	return findAll[models.CartItem](ctx, r.collection, bson.M{"user": userID}, newestFirst())
}

func (r *CartRepository) FindByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) (item models.CartItem, err error) {
	err = r.collection.FindOne(ctx, bson.M{"user": userID, "product": productID}).Decode(&item)
	return item, translate(err)
}

func (r *CartRepository) Update(ctx context.Context, item models.CartItem) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": item.ID}, bson.M{"$set": bson.M{
		"quantity":  item.Quantity,
		"size":      item.Size,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection, id)
}

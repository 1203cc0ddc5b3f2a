package mongo

import (
	"context"
	"time"

	"go-storefront/errs"
	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = primitive.NilObjectID
	product.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return translate(err)
	}
	product.ID = insertedID(res)
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (product models.Product, err error) {
	err = r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	return product, translate(err)
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	products, err := findAll[models.Product](ctx, r.collection, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	return findAll[models.Product](ctx, r.collection, bson.M{}, newestFirst())
}

func (r *ProductRepository) Update(ctx context.Context, product models.Product) (updated models.Product, err error) {
	update := bson.M{"$set": bson.M{
		"title":       product.Title,
		"description": product.Description,
		"price":       product.Price,
		"stock":       product.Stock,
		"reviews":     product.Reviews,
		"rating":      product.Rating,
		"sizes":       product.Sizes,
		"image":       product.Image,
		"brand":       product.Brand,
		"isFeatured":  product.IsFeatured,
	}}
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": product.ID}, update, afterUpdate()).Decode(&updated)
	return updated, translate(err)
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection, id)
}

// DecrementStock guards on the current stock so concurrent buyers
// cannot take the same units.
func (r *ProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return errs.ErrNotFound
		}
		return errs.ErrInsufficientStock
	}
	return nil
}

func (r *ProductRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"stock": qty}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

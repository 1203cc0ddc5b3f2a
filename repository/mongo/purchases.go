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

type PurchaseRepository struct {
	collection *mongo.Collection
}

func (r *PurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	now := time.Now()
	purchase.CreatedAt, purchase.UpdatedAt = now, now
	res, err := r.collection.InsertOne(ctx, purchase)
	if err != nil {
		return translate(err)
	}
	purchase.ID = insertedID(res)
	return nil
}

func (r *PurchaseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (purchase models.Purchase, err error) {
	err = r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&purchase)
	return purchase, translate(err)
}

func (r *PurchaseRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Purchase, error) {
	return findAll[models.Purchase](ctx, r.collection, bson.M{"user": userID}, newestFirst())
}

func (r *PurchaseRepository) FindAll(ctx context.Context) ([]models.Purchase, error) {
	return findAll[models.Purchase](ctx, r.collection, bson.M{}, newestFirst())
}

func (r *PurchaseRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Purchase, error) {
	purchases, err := findAll[models.Purchase](ctx, r.collection, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]models.Purchase, len(purchases))
	for _, p := range purchases {
		out[p.ID] = p
	}
	return out, nil
}

func (r *PurchaseRepository) Update(ctx context.Context, purchase models.Purchase) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": purchase.ID}, bson.M{"$set": bson.M{
		"size":          purchase.Size,
		"quantity":      purchase.Quantity,
		"totalAmount":   purchase.TotalAmount,
		"paymentMethod": purchase.PaymentMethod,
		"paymentStatus": purchase.PaymentStatus,
		"transactionId": purchase.TransactionID,
		"updatedAt":     time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *PurchaseRepository) SetShippingStatus(ctx context.Context, id primitive.ObjectID, from, to models.ShippingStatus) (purchase models.Purchase, err error) {
	set := bson.M{"shippingStatus": to, "updatedAt": time.Now()}
	filter := bson.M{"_id": id, "shippingStatus": from}
	err = r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, afterUpdate()).Decode(&purchase)
	if err == mongo.ErrNoDocuments {
		// either gone or moved on by someone else
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return purchase, findErr
		}
		return purchase, errs.ErrInvalidTransition
	}
	return purchase, translate(err)
}

func (r *PurchaseRepository) SetPaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (models.Purchase, error) {
	return r.setField(ctx, id, "paymentStatus", status)
}

func (r *PurchaseRepository) SetReview(ctx context.Context, id primitive.ObjectID, review string) (models.Purchase, error) {
	return r.setField(ctx, id, "review", review)
}

func (r *PurchaseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection, id)
}

func (r *PurchaseRepository) setField(ctx context.Context, id primitive.ObjectID, field string, value interface{}) (purchase models.Purchase, err error) {
	update := bson.M{"$set": bson.M{field: value, "updatedAt": time.Now()}}
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, afterUpdate()).Decode(&purchase)
	return purchase, translate(err)
}

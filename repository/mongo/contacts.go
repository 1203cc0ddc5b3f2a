package mongo

import (
	"context"
	"time"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ContactRepository struct {
	collection *mongo.Collection
}

func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	now := time.Now()
	contact.CreatedAt, contact.UpdatedAt = now, now
	res, err := r.collection.InsertOne(ctx, contact)
	if err != nil {
		return translate(err)
	}
	contact.ID = insertedID(res)
	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id primitive.ObjectID) (contact models.Contact, err error) {
	err = r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&contact)
	return contact, translate(err)
}

func (r *ContactRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Contact, error) {
	return findAll[models.Contact](ctx, r.collection, bson.M{"user": userID}, newestFirst())
}

func (r *ContactRepository) FindAll(ctx context.Context) ([]models.Contact, error) {
	return findAll[models.Contact](ctx, r.collection, bson.M{}, newestFirst())
}

func (r *ContactRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection, id)
}

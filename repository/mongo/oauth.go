package mongo

import (
	"context"
	"time"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OAuthRepository struct {
	collection *mongo.Collection
}

func (r *OAuthRepository) Create(ctx context.Context, account *models.OAuthAccount) error {
	account.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, account)
	if err != nil {
		return translate(err)
	}
	account.ID = insertedID(res)
	return nil
}

func (r *OAuthRepository) FindByUserAndProvider(ctx context.Context, userID primitive.ObjectID, provider models.OAuthProvider) (account models.OAuthAccount, err error) {
	err = r.collection.FindOne(ctx, bson.M{"userId": userID, "provider": provider}).Decode(&account)
	return account, translate(err)
}

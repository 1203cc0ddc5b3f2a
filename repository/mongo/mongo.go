// Package mongo implements the repository contracts on MongoDB
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go-storefront/errs"
	"go-storefront/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection        = "users"
	productsCollection     = "products"
	cartsCollection        = "carts"
	purchasesCollection    = "purchases"
	reviewsCollection      = "reviews"
	contactsCollection     = "contacts"
	sessionsCollection     = "sessions"
	verifyTokensCollection = "verify_email_tokens"
	resetTokensCollection  = "password_reset_tokens"
	oauthCollection        = "oauth_accounts"
	wishlistsCollection    = "wishlists"
)

// NewStore builds a repository.Store over db
func NewStore(db *mongo.Database) *repository.Store {
	return &repository.Store{
		Users:        &UserRepository{collection: db.Collection(usersCollection)},
		Products:     &ProductRepository{collection: db.Collection(productsCollection)},
		Carts:        &CartRepository{collection: db.Collection(cartsCollection)},
		Purchases:    &PurchaseRepository{collection: db.Collection(purchasesCollection)},
		Reviews:      &ReviewRepository{collection: db.Collection(reviewsCollection)},
		Contacts:     &ContactRepository{collection: db.Collection(contactsCollection)},
		Sessions:     &SessionRepository{collection: db.Collection(sessionsCollection)},
		VerifyTokens: &VerifyTokenRepository{collection: db.Collection(verifyTokensCollection)},
		ResetTokens:  &ResetTokenRepository{collection: db.Collection(resetTokensCollection)},
		OAuth:        &OAuthRepository{collection: db.Collection(oauthCollection)},
		Wishlists:    &WishlistRepository{collection: db.Collection(wishlistsCollection)},
		Ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		},
	}
}

// EnsureIndexes creates the unique indexes the schema relies on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		oauthCollection: {
			{Keys: bson.D{{Key: "providerAccountId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "provider", Value: 1}}},
		},
		resetTokensCollection: {
			{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		verifyTokensCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		wishlistsCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "product", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		cartsCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}}},
		},
		purchasesCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		sessionsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("creating indexes on %s: %w", name, err)
		}
	}
	return nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return errs.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return errs.ErrAlreadyExists
	}
	return err
}

func insertedID(res *mongo.InsertOneResult) primitive.ObjectID {
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id
}

func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

func findAll[T any](ctx context.Context, c *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve documents: %w", err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err = cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return out, nil
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

func deleteByID(ctx context.Context, c *mongo.Collection, id primitive.ObjectID) error {
	res, err := c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

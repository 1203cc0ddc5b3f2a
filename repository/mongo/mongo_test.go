package mongo

import (
	"context"
	"errors"
	"testing"

	"go-storefront/errs"
	"go-storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(mongo.ErrNoDocuments), errs.ErrNotFound)

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key"}}}
	assert.ErrorIs(t, translate(dup), errs.ErrAlreadyExists)

	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
}

func TestDecrementStock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	id := primitive.NewObjectID()
	ns := "storefront.products"

	mt.Run("decrements when stock covers the quantity", func(mt *mtest.T) {
		repo := &ProductRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		assert.NoError(mt, repo.DecrementStock(ctx, id, 2))
	})

	mt.Run("missing product is not found", func(mt *mtest.T) {
		repo := &ProductRepository{collection: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
		)

		assert.ErrorIs(mt, repo.DecrementStock(ctx, id, 2), errs.ErrNotFound)
	})

	mt.Run("existing product with too little stock", func(mt *mtest.T) {
		repo := &ProductRepository{collection: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: 1}}),
		)

		assert.ErrorIs(mt, repo.DecrementStock(ctx, id, 2), errs.ErrInsufficientStock)
	})
}

func TestSetShippingStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	id := primitive.NewObjectID()
	ns := "storefront.purchases"

	mt.Run("moves a purchase in the expected state", func(mt *mtest.T) {
		repo := &PurchaseRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "shippingStatus", Value: models.ShippingShipped},
		}}))

		purchase, err := repo.SetShippingStatus(ctx, id, models.ShippingPacked, models.ShippingShipped)
		require.NoError(mt, err)
		assert.Equal(mt, models.ShippingShipped, purchase.ShippingStatus)
	})

	mt.Run("purchase in another state is an invalid transition", func(mt *mtest.T) {
		repo := &PurchaseRepository{collection: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "shippingStatus", Value: models.ShippingDelivered},
			}),
		)

		_, err := repo.SetShippingStatus(ctx, id, models.ShippingPacked, models.ShippingShipped)
		assert.ErrorIs(mt, err, errs.ErrInvalidTransition)
	})

	mt.Run("missing purchase is not found", func(mt *mtest.T) {
		repo := &PurchaseRepository{collection: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
		)

		_, err := repo.SetShippingStatus(ctx, id, models.ShippingPacked, models.ShippingShipped)
		assert.ErrorIs(mt, err, errs.ErrNotFound)
	})
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate key maps to already exists", func(mt *mtest.T) {
		repo := &UserRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		err := repo.Create(context.Background(), &models.User{Email: "ada@example.com"})
		assert.ErrorIs(mt, err, errs.ErrAlreadyExists)
	})
}

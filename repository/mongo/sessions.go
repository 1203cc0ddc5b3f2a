package mongo

import (
	"context"
	"time"

	"go-storefront/errs"
	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionRepository struct {
	collection *mongo.Collection
}

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	now := time.Now()
	session.CreatedAt, session.UpdatedAt = now, now
	res, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return translate(err)
	}
	session.ID = insertedID(res)
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (session models.Session, err error) {
	err = r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	return session, translate(err)
}

func (r *SessionRepository) Invalidate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"valid": false, "updatedAt": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) InvalidateAllForUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx, bson.M{"userId": userID, "valid": true},
		bson.M{"$set": bson.M{"valid": false, "updatedAt": time.Now()}})
	return err
}

// DeleteExpired removes sessions past expiry as well as invalidated ones
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"$or": bson.A{
		bson.M{"expiresAt": bson.M{"$lte": now}},
		bson.M{"valid": false},
	}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

type VerifyTokenRepository struct {
	collection *mongo.Collection
}

func (r *VerifyTokenRepository) Replace(ctx context.Context, token *models.VerifyEmailToken) error {
	token.CreatedAt = time.Now()
	_, err := r.collection.DeleteMany(ctx, bson.M{"$or": bson.A{
		bson.M{"userId": token.UserID},
		bson.M{"expiresAt": bson.M{"$lte": token.CreatedAt}},
	}})
	if err != nil {
		return err
	}
	res, err := r.collection.InsertOne(ctx, token)
	if err != nil {
		return translate(err)
	}
	token.ID = insertedID(res)
	return nil
}

func (r *VerifyTokenRepository) FindLatest(ctx context.Context, userID primitive.ObjectID) (token models.VerifyEmailToken, err error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	err = r.collection.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&token)
	return token, translate(err)
}

func (r *VerifyTokenRepository) DeleteForUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

func (r *VerifyTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lte": now}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

type ResetTokenRepository struct {
	collection *mongo.Collection
}

func (r *ResetTokenRepository) Replace(ctx context.Context, token *models.PasswordResetToken) error {
	token.CreatedAt = time.Now()
	if _, err := r.collection.DeleteMany(ctx, bson.M{"userId": token.UserID}); err != nil {
		return err
	}
	res, err := r.collection.InsertOne(ctx, token)
	if err != nil {
		return translate(err)
	}
	token.ID = insertedID(res)
	return nil
}

func (r *ResetTokenRepository) FindByToken(ctx context.Context, value string) (token models.PasswordResetToken, err error) {
	err = r.collection.FindOne(ctx, bson.M{"token": value}).Decode(&token)
	return token, translate(err)
}

func (r *ResetTokenRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection, id)
}

func (r *ResetTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lte": now}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

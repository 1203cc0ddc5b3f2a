package mongo

import (
	"context"
	"time"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	collection *mongo.Collection
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.Email = models.NormalizeEmail(user.Email)
	user.CreatedAt, user.UpdatedAt = now, now
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}

	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return translate(err)
	}
	user.ID = insertedID(res)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (user models.User, err error) {
	err = r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	return user, translate(err)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user models.User, err error) {
	err = r.collection.FindOne(ctx, bson.M{"email": models.NormalizeEmail(email)}).Decode(&user)
	return user, translate(err)
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	users, err := findAll[models.User](ctx, r.collection, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]models.User, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, r.collection, bson.M{}, newestFirst())
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) (user models.User, err error) {
	set := bson.M{"updatedAt": time.Now()}
	if update.Name != "" {
		set["name"] = update.Name
	}
	if update.Email != "" {
		set["email"] = models.NormalizeEmail(update.Email)
	}
	if update.Phone != "" {
		set["phone"] = update.Phone
	}
	if update.Address != "" {
		set["address"] = update.Address
	}
	if update.Avatar != "" {
		set["avatar"] = update.Avatar
	}

	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, afterUpdate()).Decode(&user)
	return user, translate(err)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return r.set(ctx, id, bson.M{"password": hash})
}

func (r *UserRepository) SetEmailVerified(ctx context.Context, id primitive.ObjectID) error {
	return r.set(ctx, id, bson.M{"isEmailVerified": true})
}

func (r *UserRepository) SetAvatar(ctx context.Context, id primitive.ObjectID, avatar string) error {
	return r.set(ctx, id, bson.M{"avatar": avatar})
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection, id)
}

func (r *UserRepository) set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, options.Update())
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}

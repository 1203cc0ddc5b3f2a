// Package repository declares the persistence contracts the controllers
// depend on. Implementations report a missing document as errs.ErrNotFound,
// a unique-key clash as errs.ErrAlreadyExists and a failed stock guard as
// errs.ErrInsufficientStock.
package repository

import (
	"context"
	"time"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) (models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	SetEmailVerified(ctx context.Context, id primitive.ObjectID) error
	SetAvatar(ctx context.Context, id primitive.ObjectID, avatar string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DecrementStock removes qty units only if at least qty are available
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
}

type CartRepository interface {
	Create(ctx context.Context, item *models.CartItem) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.CartItem, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) (models.CartItem, error)
	Update(ctx context.Context, item models.CartItem) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Purchase, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Purchase, error)
	FindAll(ctx context.Context) ([]models.Purchase, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Purchase, error)
	Update(ctx context.Context, purchase models.Purchase) error
	// SetShippingStatus only applies when the stored status still equals from
	SetShippingStatus(ctx context.Context, id primitive.ObjectID, from, to models.ShippingStatus) (models.Purchase, error)
	SetPaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (models.Purchase, error)
	SetReview(ctx context.Context, id primitive.ObjectID, review string) (models.Purchase, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindAll(ctx context.Context) ([]models.Review, error)
}

type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Contact, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Contact, error)
	FindAll(ctx context.Context) ([]models.Contact, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Session, error)
	Invalidate(ctx context.Context, id primitive.ObjectID) error
	InvalidateAllForUser(ctx context.Context, userID primitive.ObjectID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type VerifyTokenRepository interface {
	// Replace drops expired tokens and any previous token of the user
	Replace(ctx context.Context, token *models.VerifyEmailToken) error
	FindLatest(ctx context.Context, userID primitive.ObjectID) (models.VerifyEmailToken, error)
	DeleteForUser(ctx context.Context, userID primitive.ObjectID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type ResetTokenRepository interface {
	// Replace drops any previous token of the user
	Replace(ctx context.Context, token *models.PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (models.PasswordResetToken, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type OAuthRepository interface {
	Create(ctx context.Context, account *models.OAuthAccount) error
	FindByUserAndProvider(ctx context.Context, userID primitive.ObjectID, provider models.OAuthProvider) (models.OAuthAccount, error)
}

type WishlistRepository interface {
	Add(ctx context.Context, item *models.WishlistItem) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.WishlistItem, error)
	Remove(ctx context.Context, userID, productID primitive.ObjectID) error
}

// Store groups every repository behind one handle
type Store struct {
	Users        UserRepository
	Products     ProductRepository
	Carts        CartRepository
	Purchases    PurchaseRepository
	Reviews      ReviewRepository
	Contacts     ContactRepository
	Sessions     SessionRepository
	VerifyTokens VerifyTokenRepository
	ResetTokens  ResetTokenRepository
	OAuth        OAuthRepository
	Wishlists    WishlistRepository
	// Ping checks that the backing database is reachable
	Ping func(ctx context.Context) error
}

package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go-storefront/errs"
	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/repository"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	requestTimeout = 10 * time.Second
	notifyTimeout  = 30 * time.Second
)

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

// pathID parses the {id} style route variable called name
func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[name])
	if err != nil {
		return primitive.NilObjectID, errs.ErrClient
	}
	return id, nil
}

func muxVar(r *http.Request, name string) (string, bool) {
	v, ok := mux.Vars(r)[name]
	return v, ok
}

// bodyID parses an id sent in a JSON body. Malformed ids cannot match
// anything so they surface as not found.
func bodyID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	if err != nil {
		return primitive.NilObjectID, errs.ErrNotFound
	}
	return id, nil
}

// notify runs fn after the response is committed. Failures are logged
// only, the write they report on has already happened.
func notify(r *http.Request, what string, fn func(ctx context.Context) error) {
	logger := log.Ctx(r.Context()).With().Str("component", "mailer").Str("email", what).Logger()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := fn(logger.WithContext(ctx)); err != nil {
			logger.Error().Err(err).Msg("failed to send email")
		}
	}()
}

func currentUser(ctx context.Context, users repository.UserRepository) (models.User, error) {
	id := middleware.UserID(ctx)
	if id.IsZero() {
		return models.User{}, errs.ErrNotLoggedIn
	}
	user, err := users.FindByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return models.User{}, errs.ErrNotLoggedIn
	}
	return user, err
}

// populatePurchases resolves product and buyer of each purchase
func populatePurchases(ctx context.Context, store *repository.Store, purchases []models.Purchase, withUser bool) ([]models.PurchaseView, error) {
	productIDs := make([]primitive.ObjectID, 0, len(purchases))
	userIDs := make([]primitive.ObjectID, 0, len(purchases))
	for _, p := range purchases {
		productIDs = append(productIDs, p.Product)
		userIDs = append(userIDs, p.User)
	}

	products, err := store.Products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	var users map[primitive.ObjectID]models.User
	if withUser {
		if users, err = store.Users.FindByIDs(ctx, userIDs); err != nil {
			return nil, err
		}
	}

	views := make([]models.PurchaseView, 0, len(purchases))
	for _, p := range purchases {
		view := models.PurchaseView{Purchase: p}
		if product, ok := products[p.Product]; ok {
			view.Product = &product
		}
		if user, ok := users[p.User]; ok {
			public := user.Public()
			view.User = &public
		}
		views = append(views, view)
	}
	return views, nil
}

func populateContacts(ctx context.Context, store *repository.Store, contacts []models.Contact) ([]models.ContactView, error) {
	ids := make([]primitive.ObjectID, 0, len(contacts))
	for _, c := range contacts {
		ids = append(ids, c.User)
	}
	users, err := store.Users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.ContactView, 0, len(contacts))
	for _, c := range contacts {
		view := models.ContactView{Contact: c}
		if u, ok := users[c.User]; ok {
			public := u.Public()
			view.User = &public
		}
		views = append(views, view)
	}
	return views, nil
}

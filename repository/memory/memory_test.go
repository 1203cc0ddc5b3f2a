package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-storefront/errs"
	"go-storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StoreTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *StoreTestSuite) TestUserEmailIsUnique() {
	store := NewStore()

	first := &models.User{Name: "Ann", Email: "Ann@Example.com", Password: "x"}
	s.Require().NoError(store.Users.Create(s.ctx, first))
	s.Equal("ann@example.com", first.Email)
	s.Equal(models.RoleCustomer, first.Role)

	err := store.Users.Create(s.ctx, &models.User{Name: "Other", Email: "ann@example.com"})
	s.ErrorIs(err, errs.ErrAlreadyExists)

	found, err := store.Users.FindByEmail(s.ctx, " ANN@example.com ")
	s.Require().NoError(err)
	s.Equal(first.ID, found.ID)
}

func (s *StoreTestSuite) TestUpdateProfileRejectsTakenEmail() {
	store := NewStore()
	a := &models.User{Name: "A", Email: "a@example.com"}
	b := &models.User{Name: "B", Email: "b@example.com"}
	s.Require().NoError(store.Users.Create(s.ctx, a))
	s.Require().NoError(store.Users.Create(s.ctx, b))

	_, err := store.Users.UpdateProfile(s.ctx, b.ID, models.ProfileUpdate{Email: "a@example.com"})
	s.ErrorIs(err, errs.ErrAlreadyExists)

	updated, err := store.Users.UpdateProfile(s.ctx, b.ID, models.ProfileUpdate{Phone: "123"})
	s.Require().NoError(err)
	s.Equal("123", updated.Phone)
	s.Equal("B", updated.Name)
}

func (s *StoreTestSuite) TestProductsAreReturnedDetached() {
	store := NewStore()
	p := &models.Product{Title: "Runner", Sizes: []int{40, 41}}
	s.Require().NoError(store.Products.Create(s.ctx, p))
	p.Sizes[0] = 1

	found, err := store.Products.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal([]int{40, 41}, found.Sizes)
	found.Sizes[0] = 99

	all, err := store.Products.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]int{40, 41}, all[0].Sizes)
	all[0].Sizes[1] = 98

	byID, err := store.Products.FindByIDs(s.ctx, []primitive.ObjectID{p.ID})
	s.Require().NoError(err)
	s.Equal([]int{40, 41}, byID[p.ID].Sizes)
}

func (s *StoreTestSuite) TestDecrementStockGuard() {
	store := NewStore()
	p := &models.Product{Title: "Shoe", Price: 10, Stock: 3}
	s.Require().NoError(store.Products.Create(s.ctx, p))

	s.ErrorIs(store.Products.DecrementStock(s.ctx, p.ID, 4), errs.ErrInsufficientStock)
	s.NoError(store.Products.DecrementStock(s.ctx, p.ID, 3))
	s.ErrorIs(store.Products.DecrementStock(s.ctx, p.ID, 1), errs.ErrInsufficientStock)
	s.ErrorIs(store.Products.DecrementStock(s.ctx, primitive.NewObjectID(), 1), errs.ErrNotFound)

	s.NoError(store.Products.IncrementStock(s.ctx, p.ID, 2))
	got, err := store.Products.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(2, got.Stock)
}

func (s *StoreTestSuite) TestConcurrentDecrementNeverOversells() {
	store := NewStore()
	p := &models.Product{Title: "Hat", Price: 5, Stock: 10}
	s.Require().NoError(store.Products.Create(s.ctx, p))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sold int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.Products.DecrementStock(s.ctx, p.ID, 1) == nil {
				mu.Lock()
				sold++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(10, sold)
	got, _ := store.Products.FindByID(s.ctx, p.ID)
	s.Equal(0, got.Stock)
}

func (s *StoreTestSuite) TestSetShippingStatusIsConditional() {
	store := NewStore()
	p := &models.Purchase{User: primitive.NewObjectID(), Product: primitive.NewObjectID(), Quantity: 1,
		ShippingStatus: models.ShippingPlaced}
	s.Require().NoError(store.Purchases.Create(s.ctx, p))

	updated, err := store.Purchases.SetShippingStatus(s.ctx, p.ID, models.ShippingPlaced, models.ShippingPacked)
	s.Require().NoError(err)
	s.Equal(models.ShippingPacked, updated.ShippingStatus)

	_, err = store.Purchases.SetShippingStatus(s.ctx, p.ID, models.ShippingPlaced, models.ShippingCancelled)
	s.ErrorIs(err, errs.ErrInvalidTransition)
}

func (s *StoreTestSuite) TestSessionsExpireAndInvalidate() {
	store := NewStore()
	userID := primitive.NewObjectID()
	now := time.Now()

	live := &models.Session{UserID: userID, Valid: true, ExpiresAt: now.Add(time.Hour)}
	stale := &models.Session{UserID: userID, Valid: true, ExpiresAt: now.Add(-time.Minute)}
	s.Require().NoError(store.Sessions.Create(s.ctx, live))
	s.Require().NoError(store.Sessions.Create(s.ctx, stale))

	n, err := store.Sessions.DeleteExpired(s.ctx, now)
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	s.Require().NoError(store.Sessions.InvalidateAllForUser(s.ctx, userID))
	got, err := store.Sessions.FindByID(s.ctx, live.ID)
	s.Require().NoError(err)
	s.False(got.Valid)
}

func (s *StoreTestSuite) TestVerifyTokenReplaceKeepsOnePerUser() {
	store := NewStore()
	userID := primitive.NewObjectID()

	s.Require().NoError(store.VerifyTokens.Replace(s.ctx, &models.VerifyEmailToken{UserID: userID, Token: "11111111", ExpiresAt: time.Now().Add(time.Hour)}))
	s.Require().NoError(store.VerifyTokens.Replace(s.ctx, &models.VerifyEmailToken{UserID: userID, Token: "22222222", ExpiresAt: time.Now().Add(time.Hour)}))

	latest, err := store.VerifyTokens.FindLatest(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal("22222222", latest.Token)

	s.Require().NoError(store.VerifyTokens.DeleteForUser(s.ctx, userID))
	_, err = store.VerifyTokens.FindLatest(s.ctx, userID)
	s.ErrorIs(err, errs.ErrNotFound)
}

func (s *StoreTestSuite) TestWishlistDuplicates() {
	store := NewStore()
	userID, productID := primitive.NewObjectID(), primitive.NewObjectID()

	s.Require().NoError(store.Wishlists.Add(s.ctx, &models.WishlistItem{User: userID, Product: productID}))
	s.ErrorIs(store.Wishlists.Add(s.ctx, &models.WishlistItem{User: userID, Product: productID}), errs.ErrAlreadyExists)

	s.NoError(store.Wishlists.Remove(s.ctx, userID, productID))
	s.ErrorIs(store.Wishlists.Remove(s.ctx, userID, productID), errs.ErrNotFound)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func TestFindByIDsSkipsMissing(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	p := &models.Product{Title: "Bag", Price: 1, Stock: 1}
	require.NoError(t, store.Products.Create(ctx, p))

	found, err := store.Products.FindByIDs(ctx, []primitive.ObjectID{p.ID, primitive.NewObjectID()})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, "Bag", found[p.ID].Title)
}

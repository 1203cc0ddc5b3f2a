// Package memory is a process-local implementation of the repository
// contracts used for tests and STORAGE=memory runs.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"go-storefront/errs"
	"go-storefront/models"
	"go-storefront/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// db is shared by every repository so cross-collection guards see one lock
type db struct {
	mu sync.RWMutex

	users        map[primitive.ObjectID]models.User
	products     map[primitive.ObjectID]models.Product
	carts        map[primitive.ObjectID]models.CartItem
	purchases    map[primitive.ObjectID]models.Purchase
	reviews      map[primitive.ObjectID]models.Review
	contacts     map[primitive.ObjectID]models.Contact
	sessions     map[primitive.ObjectID]models.Session
	verifyTokens map[primitive.ObjectID]models.VerifyEmailToken
	resetTokens  map[primitive.ObjectID]models.PasswordResetToken
	oauth        map[primitive.ObjectID]models.OAuthAccount
	wishlists    map[primitive.ObjectID]models.WishlistItem
}

// NewStore returns an empty in-memory store
func NewStore() *repository.Store {
	d := &db{
		users:        map[primitive.ObjectID]models.User{},
		products:     map[primitive.ObjectID]models.Product{},
		carts:        map[primitive.ObjectID]models.CartItem{},
		purchases:    map[primitive.ObjectID]models.Purchase{},
		reviews:      map[primitive.ObjectID]models.Review{},
		contacts:     map[primitive.ObjectID]models.Contact{},
		sessions:     map[primitive.ObjectID]models.Session{},
		verifyTokens: map[primitive.ObjectID]models.VerifyEmailToken{},
		resetTokens:  map[primitive.ObjectID]models.PasswordResetToken{},
		oauth:        map[primitive.ObjectID]models.OAuthAccount{},
		wishlists:    map[primitive.ObjectID]models.WishlistItem{},
	}
	return &repository.Store{
		Users:        &userRepo{d},
		Products:     &productRepo{d},
		Carts:        &cartRepo{d},
		Purchases:    &purchaseRepo{d},
		Reviews:      &reviewRepo{d},
		Contacts:     &contactRepo{d},
		Sessions:     &sessionRepo{d},
		VerifyTokens: &verifyTokenRepo{d},
		ResetTokens:  &resetTokenRepo{d},
		OAuth:        &oauthRepo{d},
		Wishlists:    &wishlistRepo{d},
		Ping:         func(context.Context) error { return nil },
	}
}

func newID(id primitive.ObjectID) primitive.ObjectID {
	if id.IsZero() {
		return primitive.NewObjectID()
	}
	return id
}

// newest sorts by creation time, newest first
func newest[T any](items []T, created func(T) time.Time) []T {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]).After(created(items[j]))
	})
	return items
}

func collect[T any](m map[primitive.ObjectID]T, keep func(T) bool) []T {
	out := []T{}
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// cloneProduct detaches Sizes so callers never share the stored array
func cloneProduct(p models.Product) models.Product {
	p.Sizes = slices.Clone(p.Sizes)
	return p
}

func cloneProducts(m map[primitive.ObjectID]models.Product) map[primitive.ObjectID]models.Product {
	for k, p := range m {
		m[k] = cloneProduct(p)
	}
	return m
}

func pick[T any](m map[primitive.ObjectID]T, ids []primitive.ObjectID) map[primitive.ObjectID]T {
	out := make(map[primitive.ObjectID]T, len(ids))
	for _, id := range ids {
		if v, ok := m[id]; ok {
			out[id] = v
		}
	}
	return out
}

type userRepo struct{ *db }

func (r *userRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.Email = models.NormalizeEmail(user.Email)
	for _, u := range r.users {
		if u.Email == user.Email {
			return errs.ErrAlreadyExists
		}
	}
	now := time.Now()
	user.ID = newID(user.ID)
	user.CreatedAt, user.UpdatedAt = now, now
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	r.users[user.ID] = *user
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return models.User{}, errs.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email = models.NormalizeEmail(email)
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, errs.ErrNotFound
}

func (r *userRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return pick(r.users, ids), nil
}

func (r *userRepo) FindAll(context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return newest(collect(r.users, nil), func(u models.User) time.Time { return u.CreatedAt }), nil
}

func (r *userRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, update models.ProfileUpdate) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return models.User{}, errs.ErrNotFound
	}
	if update.Email != "" {
		email := models.NormalizeEmail(update.Email)
		for other, existing := range r.users {
			if other != id && existing.Email == email {
				return models.User{}, errs.ErrAlreadyExists
			}
		}
		u.Email = email
	}
	if update.Name != "" {
		u.Name = update.Name
	}
	if update.Phone != "" {
		u.Phone = update.Phone
	}
	if update.Address != "" {
		u.Address = update.Address
	}
	if update.Avatar != "" {
		u.Avatar = update.Avatar
	}
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return u, nil
}

func (r *userRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	return r.mutate(id, func(u *models.User) { u.Password = hash })
}

func (r *userRepo) SetEmailVerified(_ context.Context, id primitive.ObjectID) error {
	return r.mutate(id, func(u *models.User) { u.IsEmailVerified = true })
}

func (r *userRepo) SetAvatar(_ context.Context, id primitive.ObjectID, avatar string) error {
	return r.mutate(id, func(u *models.User) { u.Avatar = avatar })
}

func (r *userRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *userRepo) mutate(id primitive.ObjectID, fn func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return errs.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}

type productRepo struct{ *db }

func (r *productRepo) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	r.products[product.ID] = cloneProduct(*product)
	return nil
}

func (r *productRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return models.Product{}, errs.ErrNotFound
	}
	return cloneProduct(p), nil
}

func (r *productRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneProducts(pick(r.products, ids)), nil
}

func (r *productRepo) FindAll(context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	products := newest(collect(r.products, nil), func(p models.Product) time.Time { return p.CreatedAt })
	for i := range products {
		products[i] = cloneProduct(products[i])
	}
	return products, nil
}

func (r *productRepo) Update(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[product.ID]
	if !ok {
		return models.Product{}, errs.ErrNotFound
	}
	product.CreatedAt = existing.CreatedAt
	r.products[product.ID] = cloneProduct(product)
	return product, nil
}

func (r *productRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *productRepo) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return errs.ErrNotFound
	}
	if p.Stock < qty {
		return errs.ErrInsufficientStock
	}
	p.Stock -= qty
	r.products[id] = p
	return nil
}

func (r *productRepo) IncrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return errs.ErrNotFound
	}
	p.Stock += qty
	r.products[id] = p
	return nil
}

type cartRepo struct{ *db }

func (r *cartRepo) Create(_ context.Context, item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	item.ID = primitive.NewObjectID()
	item.CreatedAt, item.UpdatedAt = now, now
	r.carts[item.ID] = *item
	return nil
}

func (r *cartRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[id]
	if !ok {
		return models.CartItem{}, errs.ErrNotFound
	}
	return c, nil
}

func (r *cartRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := collect(r.carts, func(c models.CartItem) bool { return c.User == userID })
	return newest(items, func(c models.CartItem) time.Time { return c.CreatedAt }), nil
}

func (r *cartRepo) FindByUserAndProduct(_ context.Context, userID, productID primitive.ObjectID) (models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.carts {
		if c.User == userID && c.Product == productID {
			return c, nil
		}
	}
	return models.CartItem{}, errs.ErrNotFound
}

func (r *cartRepo) Update(_ context.Context, item models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.carts[item.ID]
	if !ok {
		return errs.ErrNotFound
	}
	existing.Quantity = item.Quantity
	existing.Size = item.Size
	existing.UpdatedAt = time.Now()
	r.carts[item.ID] = existing
	return nil
}

func (r *cartRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.carts, id)
	return nil
}

type purchaseRepo struct{ *db }

func (r *purchaseRepo) Create(_ context.Context, purchase *models.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	purchase.ID = primitive.NewObjectID()
	purchase.CreatedAt, purchase.UpdatedAt = now, now
	r.purchases[purchase.ID] = *purchase
	return nil
}

func (r *purchaseRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.purchases[id]
	if !ok {
		return models.Purchase{}, errs.ErrNotFound
	}
	return p, nil
}

func (r *purchaseRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := collect(r.purchases, func(p models.Purchase) bool { return p.User == userID })
	return newest(items, func(p models.Purchase) time.Time { return p.CreatedAt }), nil
}

func (r *purchaseRepo) FindAll(context.Context) ([]models.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return newest(collect(r.purchases, nil), func(p models.Purchase) time.Time { return p.CreatedAt }), nil
}

func (r *purchaseRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return pick(r.purchases, ids), nil
}

func (r *purchaseRepo) Update(_ context.Context, purchase models.Purchase) error {
	return r.mutate(purchase.ID, func(p *models.Purchase) error {
		p.Size = purchase.Size
		p.Quantity = purchase.Quantity
		p.TotalAmount = purchase.TotalAmount
		p.PaymentMethod = purchase.PaymentMethod
		p.PaymentStatus = purchase.PaymentStatus
		p.TransactionID = purchase.TransactionID
		return nil
	})
}

func (r *purchaseRepo) SetShippingStatus(_ context.Context, id primitive.ObjectID, from, to models.ShippingStatus) (out models.Purchase, err error) {
	err = r.mutate(id, func(p *models.Purchase) error {
		if p.ShippingStatus != from {
			return errs.ErrInvalidTransition
		}
		p.ShippingStatus = to
		out = *p
		return nil
	})
	return out, err
}

func (r *purchaseRepo) SetPaymentStatus(_ context.Context, id primitive.ObjectID, status models.PaymentStatus) (out models.Purchase, err error) {
	err = r.mutate(id, func(p *models.Purchase) error {
		p.PaymentStatus = status
		out = *p
		return nil
	})
	return out, err
}

func (r *purchaseRepo) SetReview(_ context.Context, id primitive.ObjectID, review string) (out models.Purchase, err error) {
	err = r.mutate(id, func(p *models.Purchase) error {
		p.Review = review
		out = *p
		return nil
	})
	return out, err
}

func (r *purchaseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.purchases[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.purchases, id)
	return nil
}

func (r *purchaseRepo) mutate(id primitive.ObjectID, fn func(*models.Purchase) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[id]
	if !ok {
		return errs.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	if err := fn(&p); err != nil {
		return err
	}
	r.purchases[id] = p
	return nil
}

type reviewRepo struct{ *db }

func (r *reviewRepo) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	review.ID = primitive.NewObjectID()
	review.CreatedAt, review.UpdatedAt = now, now
	r.reviews[review.ID] = *review
	return nil
}

func (r *reviewRepo) FindAll(context.Context) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return newest(collect(r.reviews, nil), func(v models.Review) time.Time { return v.CreatedAt }), nil
}

type contactRepo struct{ *db }

func (r *contactRepo) Create(_ context.Context, contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	contact.ID = primitive.NewObjectID()
	contact.CreatedAt, contact.UpdatedAt = now, now
	r.contacts[contact.ID] = *contact
	return nil
}

func (r *contactRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contacts[id]
	if !ok {
		return models.Contact{}, errs.ErrNotFound
	}
	return c, nil
}

func (r *contactRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := collect(r.contacts, func(c models.Contact) bool { return c.User == userID })
	return newest(items, func(c models.Contact) time.Time { return c.CreatedAt }), nil
}

func (r *contactRepo) FindAll(context.Context) ([]models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return newest(collect(r.contacts, nil), func(c models.Contact) time.Time { return c.CreatedAt }), nil
}

func (r *contactRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.contacts, id)
	return nil
}

type sessionRepo struct{ *db }

func (r *sessionRepo) Create(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	session.ID = primitive.NewObjectID()
	session.CreatedAt, session.UpdatedAt = now, now
	r.sessions[session.ID] = *session
	return nil
}

func (r *sessionRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return models.Session{}, errs.ErrNotFound
	}
	return s, nil
}

func (r *sessionRepo) Invalidate(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return errs.ErrNotFound
	}
	s.Valid = false
	s.UpdatedAt = time.Now()
	r.sessions[id] = s
	return nil
}

func (r *sessionRepo) InvalidateAllForUser(_ context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == userID && s.Valid {
			s.Valid = false
			s.UpdatedAt = time.Now()
			r.sessions[id] = s
		}
	}
	return nil
}

func (r *sessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if !s.Active(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

type verifyTokenRepo struct{ *db }

func (r *verifyTokenRepo) Replace(_ context.Context, token *models.VerifyEmailToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for id, t := range r.verifyTokens {
		if t.UserID == token.UserID || t.Expired(now) {
			delete(r.verifyTokens, id)
		}
	}
	token.ID = primitive.NewObjectID()
	token.CreatedAt = now
	r.verifyTokens[token.ID] = *token
	return nil
}

func (r *verifyTokenRepo) FindLatest(_ context.Context, userID primitive.ObjectID) (models.VerifyEmailToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *models.VerifyEmailToken
	for _, t := range r.verifyTokens {
		if t.UserID != userID {
			continue
		}
		if latest == nil || t.CreatedAt.After(latest.CreatedAt) {
			t := t
			latest = &t
		}
	}
	if latest == nil {
		return models.VerifyEmailToken{}, errs.ErrNotFound
	}
	return *latest, nil
}

func (r *verifyTokenRepo) DeleteForUser(_ context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.verifyTokens {
		if t.UserID == userID {
			delete(r.verifyTokens, id)
		}
	}
	return nil
}

func (r *verifyTokenRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, t := range r.verifyTokens {
		if t.Expired(now) {
			delete(r.verifyTokens, id)
			n++
		}
	}
	return n, nil
}

type resetTokenRepo struct{ *db }

func (r *resetTokenRepo) Replace(_ context.Context, token *models.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.resetTokens {
		if t.UserID == token.UserID {
			delete(r.resetTokens, id)
		}
	}
	token.ID = primitive.NewObjectID()
	token.CreatedAt = time.Now()
	r.resetTokens[token.ID] = *token
	return nil
}

func (r *resetTokenRepo) FindByToken(_ context.Context, value string) (models.PasswordResetToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.resetTokens {
		if t.Token == value {
			return t, nil
		}
	}
	return models.PasswordResetToken{}, errs.ErrNotFound
}

func (r *resetTokenRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resetTokens[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.resetTokens, id)
	return nil
}

func (r *resetTokenRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, t := range r.resetTokens {
		if t.Expired(now) {
			delete(r.resetTokens, id)
			n++
		}
	}
	return n, nil
}

type oauthRepo struct{ *db }

func (r *oauthRepo) Create(_ context.Context, account *models.OAuthAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.oauth {
		if a.Provider == account.Provider && a.ProviderAccountID == account.ProviderAccountID {
			return errs.ErrAlreadyExists
		}
	}
	account.ID = primitive.NewObjectID()
	account.CreatedAt = time.Now()
	r.oauth[account.ID] = *account
	return nil
}

func (r *oauthRepo) FindByUserAndProvider(_ context.Context, userID primitive.ObjectID, provider models.OAuthProvider) (models.OAuthAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.oauth {
		if a.UserID == userID && a.Provider == provider {
			return a, nil
		}
	}
	return models.OAuthAccount{}, errs.ErrNotFound
}

type wishlistRepo struct{ *db }

func (r *wishlistRepo) Add(_ context.Context, item *models.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.wishlists {
		if w.User == item.User && w.Product == item.Product {
			return errs.ErrAlreadyExists
		}
	}
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	r.wishlists[item.ID] = *item
	return nil
}

func (r *wishlistRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.WishlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := collect(r.wishlists, func(w models.WishlistItem) bool { return w.User == userID })
	return newest(items, func(w models.WishlistItem) time.Time { return w.CreatedAt }), nil
}

func (r *wishlistRepo) Remove(_ context.Context, userID, productID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, w := range r.wishlists {
		if w.User == userID && w.Product == productID {
			delete(r.wishlists, id)
			return nil
		}
	}
	return errs.ErrNotFound
}

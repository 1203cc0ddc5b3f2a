package jobs

import (
	"context"
	"testing"
	"time"

	"go-storefront/errs"
	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCleanerRemovesExpiredDocuments(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now()
	user := primitive.NewObjectID()

	active := models.Session{UserID: user, Valid: true, ExpiresAt: now.Add(time.Hour)}
	expired := models.Session{UserID: user, Valid: true, ExpiresAt: now.Add(-time.Minute)}
	loggedOut := models.Session{UserID: user, Valid: false, ExpiresAt: now.Add(time.Hour)}
	for _, s := range []*models.Session{&active, &expired, &loggedOut} {
		require.NoError(t, store.Sessions.Create(ctx, s))
	}

	stale := models.PasswordResetToken{UserID: user, Token: "stale", ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, store.ResetTokens.Replace(ctx, &stale))
	fresh := models.PasswordResetToken{UserID: primitive.NewObjectID(), Token: "fresh", ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, store.ResetTokens.Replace(ctx, &fresh))

	cleaner := NewCleaner(store, middleware.NewRateLimiter(1, 1))
	cleaner.now = func() time.Time { return now }
	cleaner.Run(ctx)

	_, err := store.Sessions.FindByID(ctx, active.ID)
	assert.NoError(t, err)
	_, err = store.Sessions.FindByID(ctx, expired.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = store.Sessions.FindByID(ctx, loggedOut.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = store.ResetTokens.FindByToken(ctx, "stale")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = store.ResetTokens.FindByToken(ctx, "fresh")
	assert.NoError(t, err)
}

func TestScheduleRunsCleaner(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	expired := models.Session{UserID: primitive.NewObjectID(), Valid: true, ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, store.Sessions.Create(ctx, &expired))

	s, err := Schedule(NewCleaner(store, nil), 20*time.Millisecond)
	require.NoError(t, err)
	defer func() { _ = s.Shutdown() }()

	assert.Eventually(t, func() bool {
		_, err := store.Sessions.FindByID(ctx, expired.ID)
		return err != nil
	}, 2*time.Second, 10*time.Millisecond)
}

package utils

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go-storefront/config"
	"go-storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func TestNewMailerProviders(t *testing.T) {
	for provider, want := range map[string]interface{}{
		"resend":   &ResendMailer{},
		"sendgrid": &SendgridMailer{},
		"postmark": &PostmarkMailer{},
		"log":      LogMailer{},
	} {
		m, err := NewMailer(config.EmailConfig{Provider: provider, APIKey: "key", Sender: "Shop <shop@example.com>"})
		require.NoError(t, err, provider)
		assert.IsType(t, want, m, provider)
	}

	_, err := NewMailer(config.EmailConfig{Provider: "smtp"})
	assert.Error(t, err)

	m, err := NewMailer(config.EmailConfig{Provider: "smtp", SMTPHost: "localhost", SMTPPort: 25})
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	_, err = NewMailer(config.EmailConfig{Provider: "pigeon"})
	assert.Error(t, err)
}

func TestEmailServiceRendersTemplates(t *testing.T) {
	rec := &recordingMailer{}
	es := NewEmailService(rec, "https://shop.example.com")
	user := models.User{Name: "<Ann>", Email: "ann@example.com"}
	ctx := context.Background()

	require.NoError(t, es.SendVerificationCode(ctx, user, "01234567"))
	require.NoError(t, es.SendPasswordReset(ctx, user, "abc"))

	purchase := models.Purchase{ID: primitive.NewObjectID(), Quantity: 2, TotalAmount: 19.5,
		PaymentMethod: models.PaymentCOD, ShippingStatus: models.ShippingShipped, PaymentStatus: models.PaymentPaid}
	product := models.Product{Title: "Sneaker"}
	require.NoError(t, es.SendOrderConfirmation(ctx, user, purchase, product))
	require.NoError(t, es.SendShippingUpdate(ctx, user, purchase, product))
	require.NoError(t, es.SendPaymentUpdate(ctx, user, purchase, product))

	require.Len(t, rec.sent, 5)
	assert.Contains(t, rec.sent[0].HTML, "01234567")
	assert.Contains(t, rec.sent[0].HTML, "&lt;Ann&gt;")
	assert.Contains(t, rec.sent[1].HTML, "https://shop.example.com/reset-password/abc")
	assert.Contains(t, rec.sent[2].HTML, "19.50")
	assert.Equal(t, "Your order is shipped", rec.sent[3].Subject)
	assert.Contains(t, rec.sent[4].HTML, "paid")
	for _, msg := range rec.sent {
		assert.Equal(t, "ann@example.com", msg.To)
	}
}

func TestEmailServicePropagatesMailerError(t *testing.T) {
	es := NewEmailService(&recordingMailer{err: errors.New("boom")}, "")
	err := es.SendVerificationCode(context.Background(), models.User{Email: "x@example.com"}, "1")
	assert.Error(t, err)
}

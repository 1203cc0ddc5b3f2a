// utils/email.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/mail"
	"strings"

	"go-storefront/config"
	"go-storefront/models"

	"github.com/keighl/postmark"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"
)

// Message is a rendered email ready for a provider
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers a single message through some provider
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer picks the provider named by conf.Provider
func NewMailer(conf config.EmailConfig) (Mailer, error) {
	switch strings.ToLower(conf.Provider) {
	case "resend":
		return &ResendMailer{client: resend.NewClient(conf.APIKey), sender: conf.Sender}, nil
	case "sendgrid":
		return &SendgridMailer{client: sendgrid.NewSendClient(conf.APIKey), sender: conf.Sender}, nil
	case "postmark":
		return &PostmarkMailer{client: postmark.NewClient(conf.APIKey, ""), sender: conf.Sender}, nil
	case "smtp":
		if conf.SMTPHost == "" {
			return nil, fmt.Errorf("SMTP_HOST is not set in environment variables")
		}
		return &SMTPMailer{
			dialer: gomail.NewDialer(conf.SMTPHost, conf.SMTPPort, conf.SMTPUser, conf.SMTPPass),
			sender: conf.Sender,
		}, nil
	case "log", "":
		return LogMailer{}, nil
	}
	return nil, fmt.Errorf("unknown email provider %q", conf.Provider)
}

type ResendMailer struct {
	client *resend.Client
	sender string
}

func (m *ResendMailer) Send(_ context.Context, msg Message) error {
	_, err := m.client.Emails.Send(&resend.SendEmailRequest{
		From:    m.sender,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

type SendgridMailer struct {
	client *sendgrid.Client
	sender string
}

func (m *SendgridMailer) Send(ctx context.Context, msg Message) error {
	name, address := splitAddress(m.sender)
	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(name, address),
		msg.Subject,
		sgmail.NewEmail("", msg.To),
		"",
		msg.HTML,
	)
	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("failed to send email: sendgrid status %d", resp.StatusCode)
	}
	return nil
}

type PostmarkMailer struct {
	client *postmark.Client
	sender string
}

func (m *PostmarkMailer) Send(_ context.Context, msg Message) error {
	_, err := m.client.SendEmail(postmark.Email{
		From:     m.sender,
		To:       msg.To,
		Subject:  msg.Subject,
		HtmlBody: msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
}

func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	message := gomail.NewMessage()
	message.SetHeader("From", m.sender)
	message.SetHeader("To", msg.To)
	message.SetHeader("Subject", msg.Subject)
	message.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// LogMailer only logs, for development without a provider
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	log.Info().Str("component", "mailer").Str("to", msg.To).Str("subject", msg.Subject).Msg("email not sent, log provider in use")
	return nil
}

func splitAddress(s string) (name, address string) {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return "", s
	}
	return addr.Name, addr.Address
}

var templates = template.Must(template.New("email").Parse(`
{{define "verify"}}<h2>Hi {{.Name}},</h2>
<p>Use the code below to verify your email address. It expires in 24 hours.</p>
<p style="font-size:24px;letter-spacing:4px"><strong>{{.Code}}</strong></p>{{end}}

{{define "reset"}}<h2>Hi {{.Name}},</h2>
<p>We received a request to reset your password. The link is valid for one hour.</p>
<p><a href="{{.Link}}">Reset password</a></p>
<p>If you did not ask for this you can ignore this email.</p>{{end}}

{{define "order"}}<h2>Dear {{.Name}},</h2>
<p>Thank you for your purchase! Your order <strong>{{.OrderID}}</strong> has been placed.</p>
<p>{{.Quantity}} x {{.Product}}</p>
<p>Total Amount: <strong>{{printf "%.2f" .Total}}</strong><br>Payment Method: <strong>{{.PaymentMethod}}</strong></p>{{end}}

{{define "shipping"}}<h2>Dear {{.Name}},</h2>
<p>Your order <strong>{{.OrderID}}</strong> for {{.Product}} is now <strong>{{.Status}}</strong>.</p>{{end}}

{{define "payment"}}<h2>Dear {{.Name}},</h2>
<p>The payment status of your order <strong>{{.OrderID}}</strong> for {{.Product}} is now <strong>{{.Status}}</strong>.</p>{{end}}
`))

// EmailService renders the storefront's transactional emails
type EmailService struct {
	mailer    Mailer
	clientURL string
}

func NewEmailService(mailer Mailer, clientURL string) *EmailService {
	return &EmailService{mailer: mailer, clientURL: clientURL}
}

func (es *EmailService) send(ctx context.Context, to, subject, tmpl string, data interface{}) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, tmpl, data); err != nil {
		return fmt.Errorf("rendering %s email: %w", tmpl, err)
	}
	return es.mailer.Send(ctx, Message{To: to, Subject: subject, HTML: buf.String()})
}

func (es *EmailService) SendVerificationCode(ctx context.Context, user models.User, code string) error {
	return es.send(ctx, user.Email, "Verify Your Email", "verify", map[string]string{
		"Name": user.Name,
		"Code": code,
	})
}

// SendPasswordReset mails a link into the client's reset-password page
func (es *EmailService) SendPasswordReset(ctx context.Context, user models.User, token string) error {
	return es.send(ctx, user.Email, "Reset Your Password", "reset", map[string]string{
		"Name": user.Name,
		"Link": es.ResetLink(token),
	})
}

func (es *EmailService) ResetLink(token string) string {
	return fmt.Sprintf("%s/reset-password/%s", es.clientURL, token)
}

func (es *EmailService) SendOrderConfirmation(ctx context.Context, user models.User, purchase models.Purchase, product models.Product) error {
	return es.send(ctx, user.Email, "Order Confirmation", "order", map[string]interface{}{
		"Name":          user.Name,
		"OrderID":       purchase.ID.Hex(),
		"Product":       product.Title,
		"Quantity":      purchase.Quantity,
		"Total":         purchase.TotalAmount,
		"PaymentMethod": purchase.PaymentMethod,
	})
}

func (es *EmailService) SendShippingUpdate(ctx context.Context, user models.User, purchase models.Purchase, product models.Product) error {
	return es.send(ctx, user.Email, "Your order is "+string(purchase.ShippingStatus), "shipping", map[string]interface{}{
		"Name":    user.Name,
		"OrderID": purchase.ID.Hex(),
		"Product": product.Title,
		"Status":  purchase.ShippingStatus,
	})
}

func (es *EmailService) SendPaymentUpdate(ctx context.Context, user models.User, purchase models.Purchase, product models.Product) error {
	return es.send(ctx, user.Email, "Payment "+string(purchase.PaymentStatus), "payment", map[string]interface{}{
		"Name":    user.Name,
		"OrderID": purchase.ID.Hex(),
		"Product": product.Title,
		"Status":  purchase.PaymentStatus,
	})
}

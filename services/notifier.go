package services

import (
	"context"
	"fmt"
	"html"

	"phantoms-store/models"

	"gopkg.in/gomail.v2"
)

// Notifier tells the store admin about new contact messages.
type Notifier interface {
	NotifyContactMessage(ctx context.Context, msg models.ContactMessage) error
}

type EmailNotifierConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	SenderName  string
	NotifyEmail string
}

type EmailNotifier struct {
	dialer    *gomail.Dialer
	sender    string
	recipient string
}

func NewEmailNotifier(cfg EmailNotifierConfig) *EmailNotifier {
	return &EmailNotifier{
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		sender:    cfg.SenderName,
		recipient: cfg.NotifyEmail,
	}
}

func (n *EmailNotifier) NotifyContactMessage(ctx context.Context, msg models.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", n.sender, n.dialer.Username))
	m.SetHeader("To", n.recipient)
	m.SetHeader("Reply-To", msg.Email)
	m.SetHeader("Subject", "New contact message from "+msg.Name)
	m.SetBody("text/html", contactMessageBody(msg))

	if err := n.dialer.DialAndSend(m); err != nil {
		return models.ErrorUpstream{Message: "failed to send notification e-mail", Err: err}
	}
	return nil
}

func contactMessageBody(msg models.ContactMessage) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px;">
			<h2>New contact message</h2>
			<p><strong>From:</strong> %s &lt;%s&gt;</p>
			<p style="white-space: pre-wrap;">%s</p>
		</div>
	`, html.EscapeString(msg.Name), html.EscapeString(msg.Email), html.EscapeString(msg.Message))
}

type NoopNotifier struct{}

func (NoopNotifier) NotifyContactMessage(context.Context, models.ContactMessage) error {
	return nil
}

package mailer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/asclub/club-api/internal/config"
)

type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends the newsletter emails over SMTP.
type Mailer struct {
	sender  Sender
	from    string
	domain  string
	siteURL string
}

func New(conf *config.SMTPConfig, siteURL string) *Mailer {
	return NewWithSender(gomail.NewDialer(conf.Host, conf.Port, conf.Username, conf.Password), conf.From, conf.Domain, siteURL)
}

func NewWithSender(sender Sender, from, domain, siteURL string) *Mailer {
	return &Mailer{
		sender:  sender,
		from:    from,
		domain:  domain,
		siteURL: siteURL,
	}
}

func (m *Mailer) SendSubscriptionConfirmation(to, name string) error {
	greeting := "Bonjour,"
	if name != "" {
		greeting = fmt.Sprintf("Bonjour %s,", name)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", m.messageID())
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Inscription à la newsletter du club")
	msg.SetBody("text/plain", fmt.Sprintf("%s\n\nVotre inscription à la newsletter est confirmée.\n%s\n", greeting, m.siteURL))
	msg.AddAlternative("text/html", fmt.Sprintf("<p>%s</p><p>Votre inscription à la newsletter est confirmée.</p><p><a href=%q>%s</a></p>", greeting, m.siteURL, m.siteURL))

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("m.sender.DialAndSend -> %w", err)
	}

	zap.L().Info("subscription confirmation sent", zap.String("to", to))
	return nil
}

func (m *Mailer) messageID() string {
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), m.domain)
}

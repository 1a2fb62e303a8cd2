package notify

import (
	"context"
	"path/filepath"
	"time"

	"github.com/shanehull/auctionwatch/internal/logging"

	gomail "gopkg.in/mail.v2"
)

// EmailConfig holds SMTP configuration for sending emails.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	ToEmail    string
	Enabled    bool
}

// EmailSender delivers messages via SMTP.
type EmailSender struct {
	cfg    EmailConfig
	dialer *gomail.Dialer
}

// NewEmailSender creates a sender with the given SMTP configuration.
func NewEmailSender(cfg EmailConfig) *EmailSender {
	if cfg.FromEmail == "" {
		cfg.FromEmail = cfg.SMTPUser
	}

	dialer := gomail.NewDialer(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	dialer.Timeout = 10 * time.Second

	return &EmailSender{cfg: cfg, dialer: dialer}
}

func (s *EmailSender) Channel() string {
	return "email"
}

// Enabled reports whether SMTP delivery is configured. A disabled sender
// answers every send with ErrChannelDisabled.
func (s *EmailSender) Enabled() bool {
	return s.cfg.Enabled
}

// SendText delivers an email with a plain text body and an HTML alternative.
func (s *EmailSender) SendText(ctx context.Context, msg *RenderedMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.send(s.buildMessage(msg))
}

// SendImage mails the image as an attachment.
func (s *EmailSender) SendImage(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.send(s.buildImageMessage(path))
}

func (s *EmailSender) send(m *gomail.Message) error {
	if !s.cfg.Enabled {
		return ErrChannelDisabled
	}
	subject := m.GetHeader("Subject")

	if err := s.dialer.DialAndSend(m); err != nil {
		logging.Error("email send failed", map[string]any{"to": s.cfg.ToEmail, "subject": subject, "error": err.Error()})
		return err
	}

	logging.Debug("email sent", map[string]any{"subject": subject})
	return nil
}

func (s *EmailSender) buildMessage(msg *RenderedMessage) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", s.cfg.ToEmail)
	m.SetHeader("Subject", msg.Subject)

	if msg.HTML != "" && msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	} else if msg.HTML != "" {
		m.SetBody("text/html", msg.HTML)
	} else {
		m.SetBody("text/plain", msg.Text)
	}
	return m
}

func (s *EmailSender) buildImageMessage(path string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", s.cfg.ToEmail)
	m.SetHeader("Subject", "Auction monitor heartbeat")
	m.SetBody("text/plain", "Auction monitor is running.\n")
	m.Attach(path, gomail.Rename(filepath.Base(path)))
	return m
}

package mailer

import (
	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender delivers HTML mail. Delivery is best-effort throughout the service:
// callers log failures and move on, they never fail a run because of one.
type Sender interface {
	Send(to []string, subject, htmlBody string) error
}

type SMTPSender struct {
	cfg    *Config
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg *Config) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *SMTPSender) Send(to []string, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return s.dialer.DialAndSend(m)
}

package mailer

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/tanacoin/platform/internal/config"
)

type Mailer interface {
	SendPasswordReset(email, newPassword string) error
	SendContactMessage(name, email, message string) error
}

type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func New(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.MailFrom,
	}
}

func (m *SMTPMailer) SendPasswordReset(email, newPassword string) error {
	body := fmt.Sprintf("Your password has been reset.\r\nYour new password is: %s\r\nPlease change it after logging in.", newPassword)
	return m.send(email, "Tanacoin password reset", body)
}

func (m *SMTPMailer) SendContactMessage(name, email, message string) error {
	body := fmt.Sprintf("From: %s <%s>\r\n\r\n%s", name, email, message)
	// Contact messages are relayed to the platform mailbox.
	return m.send(m.user, "Tanacoin contact form", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if m.host == "" {
		return fmt.Errorf("smtp is not configured")
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body))
	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		zap.L().Error("can't send mail", zap.String("to", to), zap.Error(err))
		return err
	}
	return nil
}

// Package email sends account notifications over SMTP.
package email

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/dietdesk/dietdesk/internal/shared/config"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for email links (e.g., "http://localhost:3000")
}

func SMTPConfigFrom(cfg config.EmailConfig, baseURL string) SMTPConfig {
	return SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
		BaseURL:     baseURL,
	}
}

type SMTPEmailService struct {
	config SMTPConfig
	sender gomail.Sender
	dialer *gomail.Dialer
	logger logger.Interface
}

func NewSMTPEmailService(config SMTPConfig, log logger.Interface) *SMTPEmailService {
	return &SMTPEmailService{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		logger: log,
	}
}

// newWithSender bypasses the dialer; used in tests.
func newWithSender(config SMTPConfig, sender gomail.Sender, log logger.Interface) *SMTPEmailService {
	return &SMTPEmailService{config: config, sender: sender, logger: log}
}

func (s *SMTPEmailService) SendWelcomeEmail(to, name, role, temporaryPassword string) error {
	loginURL := fmt.Sprintf("%s/login", s.config.BaseURL)

	subject := "Welcome to DietDesk"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome, %s!</h2>
			<p>A %s account has been created for you.</p>
			<p>Sign in at <a href="%s">%s</a> with this email address.</p>
			%s
		</body>
		</html>
	`, html.EscapeString(name), html.EscapeString(role), loginURL, loginURL, passwordHTML(temporaryPassword))

	plainBody := fmt.Sprintf(`
Welcome, %s!

A %s account has been created for you.
Sign in at %s with this email address.
%s
	`, name, role, loginURL, passwordPlain(temporaryPassword))

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendPasswordResetEmail(to, name, temporaryPassword string) error {
	loginURL := fmt.Sprintf("%s/login", s.config.BaseURL)

	subject := "Your password has been reset"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Password Reset</h2>
			<p>Hello %s, an administrator reset the password of your account.</p>
			%s
			<p>Sign in at <a href="%s">%s</a> and change it right away.</p>
		</body>
		</html>
	`, html.EscapeString(name), passwordHTML(temporaryPassword), loginURL, loginURL)

	plainBody := fmt.Sprintf(`
Password Reset

Hello %s, an administrator reset the password of your account.
%s
Sign in at %s and change it right away.
	`, name, passwordPlain(temporaryPassword), loginURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func passwordHTML(password string) string {
	if password == "" {
		return ""
	}
	return fmt.Sprintf("<p>Temporary password: <code>%s</code></p>", html.EscapeString(password))
}

func passwordPlain(password string) string {
	if password == "" {
		return ""
	}
	return "Temporary password: " + password
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	var err error
	if s.sender != nil {
		err = gomail.Send(s.sender, m)
	} else {
		err = s.dialer.DialAndSend(m)
	}
	if err != nil {
		s.logger.Errorw("failed to send email", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infow("email sent", "to", to, "subject", subject)
	return nil
}

// NoopEmailService logs instead of sending when email is disabled.
type NoopEmailService struct {
	logger logger.Interface
}

func NewNoopEmailService(log logger.Interface) *NoopEmailService {
	return &NoopEmailService{logger: log}
}

func (s *NoopEmailService) SendWelcomeEmail(to, name, role, temporaryPassword string) error {
	s.logger.Infow("email disabled, welcome email skipped", "to", to, "role", role)
	return nil
}

func (s *NoopEmailService) SendPasswordResetEmail(to, name, temporaryPassword string) error {
	s.logger.Infow("email disabled, password reset email skipped", "to", to)
	return nil
}

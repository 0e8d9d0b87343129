package email

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendGradedNotice(toEmail, toName, assignmentName, gradeDisplay string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendGradedNotice tells a student that one of their submissions has been graded.
// Delivery is best effort: when SMTP credentials are not configured the notice
// is logged instead of sent, so grading never fails on mail problems.
func (s *EmailServiceImpl) SendGradedNotice(toEmail, toName, assignmentName, gradeDisplay string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("assignment", assignmentName).
			Str("grade", gradeDisplay).
			Msg("SMTP credentials not configured - graded notice not sent")
		return nil
	}

	subject := fmt.Sprintf("Your submission for %s has been graded", assignmentName)
	body := fmt.Sprintf("Hello %s,\r\n\r\nYour submission for \"%s\" has been graded: %s.\r\n",
		toName, assignmentName, gradeDisplay)

	msg := []byte("From: " + s.config.FromName + " <" + s.config.FromEmail + ">\r\n" +
		"To: " + toEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body)

	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{toEmail}, msg); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send graded notice")
		return fmt.Errorf("failed to send graded notice: %w", err)
	}

	s.logger.Info().Str("toEmail", toEmail).Str("assignment", assignmentName).Msg("Graded notice sent")
	return nil
}

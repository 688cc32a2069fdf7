package application

import (
	"errors"
	"fmt"
	"html"
	"net/mail"
	"strings"
	"time"

	"github.com/Maxito7/heey_portfolio/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrInvalidContact    = errors.New("invalid contact message")
	ErrMailNotConfigured = errors.New("email is not configured")
)

type ContactService struct {
	mailer    domain.Mailer
	recipient string
	logger    *zap.Logger
	now       func() time.Time
}

// NewContactService creates the service. mailer may be nil when SMTP is not configured.
func NewContactService(mailer domain.Mailer, recipient string, logger *zap.Logger) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{mailer: mailer, recipient: recipient, logger: logger, now: time.Now}
}

// Send validates the inquiry and emails it to the studio.
func (s *ContactService) Send(msg domain.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Message = strings.TrimSpace(msg.Message)
	if msg.Name == "" || msg.Message == "" {
		return fmt.Errorf("%w: name and message are required", ErrInvalidContact)
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidContact)
	}
	if s.mailer == nil || s.recipient == "" {
		return ErrMailNotConfigured
	}
	msg.CreatedAt = s.now()

	subject := msg.Subject
	if subject == "" {
		subject = "New inquiry from " + msg.Name
	}
	if err := s.mailer.SendEmail(s.recipient, subject, contactHTML(msg)); err != nil {
		s.logger.Error("error sending contact email", zap.String("from", msg.Email), zap.Error(err))
		return err
	}
	s.logger.Info("contact email sent", zap.String("from", msg.Email))
	return nil
}

func contactHTML(msg domain.ContactMessage) string {
	var b strings.Builder
	b.WriteString("<h2>New inquiry</h2>")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", html.EscapeString(msg.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(msg.Email))
	fmt.Fprintf(&b, "<p><strong>Date:</strong> %s</p>", msg.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "<p>%s</p>", strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"))
	return b.String()
}

package domain

import "time"

// ContactMessage is an inquiry sent from the site's contact section.
type ContactMessage struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type Mailer interface {
	SendEmail(to, subject, htmlBody string) error
}

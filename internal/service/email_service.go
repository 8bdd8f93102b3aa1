package service

import (
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// EmailService отправляет уведомления пользователям
type EmailService interface {
	// SendWordRequestReviewed уведомляет автора заявки о результате модерации
	SendWordRequestReviewed(to, word, status, adminResponse string) error
}

// NoopEmailService используется, когда API-ключ почтового провайдера не задан:
// письма не отправляются, факт вызова логируется
type NoopEmailService struct{}

// NewNoopEmailService создает заглушку почтового сервиса
func NewNoopEmailService() *NoopEmailService {
	return &NoopEmailService{}
}

func (s *NoopEmailService) SendWordRequestReviewed(to, word, status, adminResponse string) error {
	log.Printf("[EmailService] Почта не настроена: пропущено уведомление для %s (слово '%s', статус %s)", to, word, status)
	return nil
}

// ResendEmailService отправляет письма через Resend API
type ResendEmailService struct {
	client *resend.Client
	from   string
}

// NewResendEmailService создает почтовый сервис на базе Resend
func NewResendEmailService(apiKey, from string) *ResendEmailService {
	return &ResendEmailService{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendEmailService) SendWordRequestReviewed(to, word, status, adminResponse string) error {
	subject := fmt.Sprintf("Your word suggestion '%s' was %s", word, status)
	html := fmt.Sprintf("<p>Your suggested word <strong>%s</strong> has been <strong>%s</strong>.</p>", word, status)
	if adminResponse != "" {
		html += fmt.Sprintf("<p>Moderator note: %s</p>", adminResponse)
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		log.Printf("[EmailService] Ошибка отправки письма на %s: %v", to, err)
		return err
	}

	log.Printf("[EmailService] Письмо %s отправлено на %s", sent.Id, to)
	return nil
}

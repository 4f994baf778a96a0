package email

import (
	"bytes"
	"html/template"
	"os"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(logger *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(os.Getenv("RESEND_API_KEY")),
		from:     os.Getenv("EMAIL_FROM_ADDRESS"),
		fromName: os.Getenv("EMAIL_FROM_NAME"),
		logger:   logger,
	}
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<h1>Welcome to PawPrints, {{.FullName}}!</h1>
<p>Your account is ready. Upload your first photo and start sharing.</p>
<p>&copy; {{.Year}} PawPrints</p>
`))

func (s *EmailService) SendWelcomeEmail(email, fullName string) error {
	var html bytes.Buffer
	err := welcomeTemplate.Execute(&html, map[string]interface{}{
		"FullName": fullName,
		"Year":     time.Now().Year(),
	})
	if err != nil {
		s.logger.Error("failed to render welcome email", zap.String("email", email), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Welcome to PawPrints!",
		Html:    html.String(),
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send welcome email", zap.String("email", email), zap.Error(err))
		return err
	}

	s.logger.Info("welcome email sent", zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"golfacademy/internal/models"
)

// EmailService sends transactional email through Amazon SES
type EmailService struct {
	client   *sesv2.Client
	from     string
	fromName string
	baseURL  string
}

// NewEmailService creates an SES-backed email service using the default
// AWS credential chain
func NewEmailService(ctx context.Context, region, fromEmail, fromName, baseURL string) (*EmailService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &EmailService{
		client:   sesv2.NewFromConfig(cfg),
		from:     fromEmail,
		fromName: fromName,
		baseURL:  baseURL,
	}, nil
}

func (s *EmailService) send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.from)),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
					Text: &types.Content{Data: aws.String(textBody)},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendPasswordReset emails a reset link valid for one hour
func (s *EmailService) SendPasswordReset(ctx context.Context, to, name, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)

	html := fmt.Sprintf(`<p>Hi %s,</p>
<p>We received a request to reset your Golf Academy password.</p>
<p><a href="%s">Reset your password</a></p>
<p>The link expires in one hour. If you didn't ask for this, ignore this email.</p>`, name, link)

	text := fmt.Sprintf("Hi %s,\n\nReset your Golf Academy password here: %s\n\nThe link expires in one hour. If you didn't ask for this, ignore this email.\n", name, link)

	return s.send(ctx, to, "Reset your Golf Academy password", html, text)
}

// SendWeeklySummary emails a player their week in numbers
func (s *EmailService) SendWeeklySummary(ctx context.Context, to, name string, summary *models.RoundSummary, level models.LevelProgress, totalXP int) error {
	html := fmt.Sprintf(`<p>Hi %s,</p>
<p>Here is your week at the academy:</p>
<ul>
<li>Rounds logged: %d</li>
<li>Best score: %d</li>
<li>Total XP: %d (level %d, %.0f%% to the next)</li>
</ul>
<p><a href="%s">Open your practice plan</a></p>`,
		name, summary.Rounds, summary.BestScore, totalXP, level.Level, level.Fraction*100, s.baseURL)

	text := fmt.Sprintf("Hi %s,\n\nRounds logged: %d\nBest score: %d\nTotal XP: %d (level %d)\n\nOpen your practice plan: %s\n",
		name, summary.Rounds, summary.BestScore, totalXP, level.Level, s.baseURL)

	return s.send(ctx, to, "Your week at Golf Academy", html, text)
}

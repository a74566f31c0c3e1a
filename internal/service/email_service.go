package service

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// sesAPI is the part of the SES client the service uses
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     sesAPI
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewEmailService creates a new email service
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, appBaseURL string, debug bool) (*EmailService, error) {
	// If fromEmail is empty, create a disabled service
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, debug: debug}, nil
	}

	if debug {
		log.Printf("[DEBUG] Initializing email service with AWS SES")
		log.Printf("[DEBUG] AWS Region: %s", awsRegion)
		log.Printf("[DEBUG] From: %s <%s>", fromName, fromEmail)
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
		debug:      debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWeeklyDigest e-mails the user's progress report
func (s *EmailService) SendWeeklyDigest(ctx context.Context, toEmail string, report *ProgressReport) error {
	if !s.enabled {
		if s.debug {
			log.Printf("[DEBUG] Skipping weekly digest to %s (service disabled)", toEmail)
		}
		return nil
	}

	subject, htmlBody, textBody := renderWeeklyDigest(report, s.appBaseURL)
	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

func renderWeeklyDigest(report *ProgressReport, appBaseURL string) (subject, htmlBody, textBody string) {
	k := report.KPIs
	subject = "Your week in Mind Coach"

	htmlBody = fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #6b5bd2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #6b5bd2; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Your Weekly Progress</h1>
		</div>
		<div class="content">
			<p>%s</p>
			<ul>
				<li>Mind gym sessions this week: <strong>%d</strong></li>
				<li>Current streak: <strong>%d days</strong> (%s)</li>
				<li>Happiness change over 7 days: <strong>%+d</strong></li>
				<li>Average happiness: <strong>%d/10</strong></li>
				<li>Favourite exercise: <strong>%s</strong></li>
			</ul>
			<p>%s</p>
			<p style="text-align: center;">
				<a href="%s" class="button">Open Mind Coach</a>
			</p>
		</div>
		<div class="footer">
			<p>You receive this e-mail because weekly notifications are on. Turn them off in settings.</p>
		</div>
	</div>
</body>
</html>
`, html.EscapeString(report.WeeklyInsight), k.WeeklyMindGymSessions, k.CurrentStreak,
		html.EscapeString(report.StreakMessage), k.HappinessScoreDelta7Day, k.AverageHappinessScore,
		html.EscapeString(k.FavoriteExerciseType), html.EscapeString(report.HappinessMessage), html.EscapeString(appBaseURL))

	textBody = fmt.Sprintf(`%s

- Mind gym sessions this week: %d
- Current streak: %d days (%s)
- Happiness change over 7 days: %+d
- Average happiness: %d/10
- Favourite exercise: %s

%s

Open Mind Coach: %s

---
You receive this e-mail because weekly notifications are on. Turn them off in settings.
`, report.WeeklyInsight, k.WeeklyMindGymSessions, k.CurrentStreak, report.StreakMessage,
		k.HappinessScoreDelta7Day, k.AverageHappinessScore, k.FavoriteExerciseType, report.HappinessMessage, appBaseURL)

	return subject, htmlBody, textBody
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	if s.debug {
		log.Printf("[DEBUG] sendEmail: from=%s to=%s subject=%s", fromAddress, toEmail, subject)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] Message ID: %s", *result.MessageId)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}

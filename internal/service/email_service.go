package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends transactional mail via Amazon SES
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service. An empty fromEmail
// yields a disabled service that logs and skips every send.
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
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
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendOTPEmail sends the registration verification code
func (s *EmailService) SendOTPEmail(ctx context.Context, toEmail, toName, otpCode string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): OTP to %s", toEmail)
		return nil
	}

	subject := "Your Buddy Verification Code"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="color: #4a90e2;">Welcome to Buddy!</h1>
		<p>Hi %s,</p>
		<p>Use this code to finish creating your account:</p>
		<p style="font-size: 32px; font-weight: bold; letter-spacing: 8px; text-align: center;">%s</p>
		<p><strong>The code expires in 5 minutes.</strong></p>
		<p>If you didn't sign up for Buddy, you can safely ignore this email.</p>
	</div>
</body>
</html>
`, toName, otpCode)

	textBody := fmt.Sprintf(`Hi %s,

Use this code to finish creating your Buddy account:

%s

The code expires in 5 minutes.

If you didn't sign up for Buddy, you can safely ignore this email.
`, toName, otpCode)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendChildCredentialsEmail sends a child's generated login details to
// the parent
func (s *EmailService) SendChildCredentialsEmail(ctx context.Context, toEmail, parentName, childName, username, password string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): child credentials to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("Login Details for %s", childName)
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="color: #4a90e2;">%s is ready to explore!</h1>
		<p>Hi %s,</p>
		<p>Here are the login details for %s:</p>
		<table style="margin: 20px 0;">
			<tr><td style="padding: 4px 12px 4px 0;"><strong>Username</strong></td><td>%s</td></tr>
			<tr><td style="padding: 4px 12px 4px 0;"><strong>Password</strong></td><td>%s</td></tr>
		</table>
		<p>You can sign in at <a href="%s">%s</a>.</p>
		<p>Keep these details somewhere safe.</p>
	</div>
</body>
</html>
`, childName, parentName, childName, username, password, s.appBaseURL, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Here are the login details for %s:

Username: %s
Password: %s

You can sign in at %s.

Keep these details somewhere safe.
`, parentName, childName, username, password, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
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

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}

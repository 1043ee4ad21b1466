package utils

import (
	"fmt"
	"log"

	"schoolportal/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an HTML email through SendGrid.
var SendEmail = func(toEmail, toName, subject, htmlBody string) error {
	from := mail.NewEmail("School Portal", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid error: %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the portal's standard HTML shell.
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A3C6E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A3C6E; line-height: 1.6; }
			.content h2 { color: #1A3C6E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #E8A33D; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>SCHOOL PORTAL</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 School Portal. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome on account creation
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to School Portal"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your <strong>School Portal</strong> account has been created.</p>
		<p>You can now log in, browse study materials and attempt practice papers.</p>
	`, name)

	go SendEmail(email, name, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Generated question paper ready for download
func SendPaperReadyEmail(email, name, paperTitle string) {
	subject := "Question Paper Ready: " + paperTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your question paper <strong>%s</strong> has been generated.</p>
		<div class="info-box">
			Log in to the portal to download the PDF.
		</div>
	`, name, paperTitle)

	go SendEmail(email, name, subject, getEmailTemplate("Paper Generated", body))
}

// 3. Password changed notification
func SendPasswordChangedEmail(email, name string) {
	subject := "Your password was changed"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The password for your School Portal account was just changed.</p>
		<p style="color: #DC3545; font-weight: bold;">If you did not request this change, please contact the school office immediately.</p>
	`, name)

	go SendEmail(email, name, subject, getEmailTemplate("Password Changed", body))
}

package services

import (
	"fmt"
	"log"

	"github.com/wneessen/go-mail"

	"velora_back_end/internal/config"
	"velora_back_end/internal/models"
)

// SendWelcomeMail sends a welcome message to a freshly registered user. It is
// a no-op when SMTP is not configured and never fails the registration.
func SendWelcomeMail(cfg config.Config, user models.User) {
	if cfg.SMTPHost == "" {
		return
	}

	msg := mail.NewMsg()
	if err := msg.From(cfg.MailFrom); err != nil {
		log.Printf("⚠️  Welcome mail: bad sender address: %v", err)
		return
	}
	if err := msg.To(user.Email); err != nil {
		log.Printf("⚠️  Welcome mail: bad recipient address: %v", err)
		return
	}
	msg.Subject("Welcome to Velora")
	msg.SetBodyString(mail.TypeTextHTML, welcomeHTML(user))

	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(cfg.SMTPUser),
		mail.WithPassword(cfg.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		log.Printf("⚠️  Welcome mail: client setup failed: %v", err)
		return
	}

	log.Println("📤 Sending welcome mail to", user.Email)
	if err := client.DialAndSend(msg); err != nil {
		log.Printf("⚠️  Welcome mail: send failed: %v", err)
	}
}

func welcomeHTML(user models.User) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Welcome</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Welcome, %s!</h2>
		<p>Your Velora account has been created. Happy shopping.</p>
	</div>
</body>
</html>`, user.Username)
}

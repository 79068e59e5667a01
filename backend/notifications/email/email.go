// Package email delivers reminder alerts over SMTP. It is the out-of-app
// half of the notification system: delivery is best-effort and failures
// here never affect the in-app active notification.
package email

import (
	"fmt"
	"net/smtp"
)

// smtpServer is the address of the SMTP server used to send alerts.
var smtpServer string

// auth holds the credentials for the SMTP connection.
var auth smtp.Auth

// fromEmail is the "From" address on outgoing alerts.
var fromEmail string

// InitEmailService configures the SMTP sender and dials the server once to
// verify the connection. Returns false and an error if the server is not
// reachable.
func InitEmailService(sender, password string) (bool, error) {
	smtpServer = "smtp.gmail.com:587"
	fromEmail = sender

	auth = smtp.PlainAuth(
		"",
		sender,
		password,
		"smtp.gmail.com",
	)

	c, err := smtp.Dial(smtpServer)
	if err != nil {
		return false, fmt.Errorf("cannot connect to the SMTP server: %v", err)
	}

	err = c.Close()
	if err != nil {
		return false, fmt.Errorf("cannot close the SMTP connection: %v", err)
	}

	return true, nil
}

// SendAlert emails one due reminder to the recipient.
func SendAlert(to, text, when string) error {
	headers := make(map[string]string)
	headers["From"] = fromEmail
	headers["To"] = to
	headers["Subject"] = "LifeOS Reminder"
	headers["MIME-version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=\"UTF-8\""

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}

	body := `
	<html>
		<body>
			<div style="max-width: 600px; margin: 0 auto; padding: 10px;">
				<h1>LifeOS Reminder</h1>
				<p><strong>` + text + `</strong></p>
				<p>Due: ` + when + `</p>
			</div>
		</body>
	</html>
	`
	message += "\r\n" + body

	err := smtp.SendMail(
		smtpServer,
		auth,
		fromEmail,
		[]string{to},
		[]byte(message),
	)

	if err != nil {
		return fmt.Errorf("failed to send alert email: %v", err)
	}

	return nil
}

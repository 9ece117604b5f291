package controllers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"breboot/configuration"
	"breboot/models"

	"github.com/go-gomail/gomail"
)

const otpEmailTemplate = `<!DOCTYPE html>
<html lang="en">
  <body style="margin: 0; font-family: 'Poppins', sans-serif; background: #ffffff; font-size: 14px;">
    <div style="max-width: 680px; margin: 0 auto; padding: 45px 30px 60px; background: linear-gradient(135deg, #f9e0c2, #f7941d); color: #434343;">
      <div style="margin-top: 70px; padding: 92px 30px 115px; background: #ffffff; border-radius: 30px; text-align: center;">
        <h1 style="margin: 0; font-size: 28px; font-weight: 500; color: #1f1f1f;">Your OTP</h1>
        <p style="margin: 17px 0 0; font-size: 20px; font-weight: 500;">Hey %s,</p>
        <p style="margin: 17px 0 0; font-size: 16px; font-weight: 500;">
          Thank you for choosing <span style="font-weight: 600; color: #1f1f1f;">Breboot</span>.
          Use the following OTP to verify your Email. This OTP is valid for
          <span style="font-weight: 600; color: #1f1f1f;">5 minutes</span>.
          Please do not share this code with anyone.
        </p>
        <p style="margin: 60px 0 0; font-size: 40px; font-weight: 600; color: #f7941d; word-spacing: 12px;">%s</p>
      </div>
      <p style="margin: 40px 0 0; text-align: center;">&copy; %d Breboot. All rights reserved.</p>
    </div>
  </body>
</html>`

// GmailSender dispatches OTP mails through the configured SMTP account.
type GmailSender struct{}

func NewGmailSender() *GmailSender {
	return &GmailSender{}
}

// SendOTP mails the code using the Breboot OTP template. Doctors are greeted
// as "Dr. <name>", other users as "Mr. <name>".
func (g *GmailSender) SendOTP(email, name, userType, code string) error {
	prefixedName := "User"
	if name != "" {
		switch userType {
		case models.UserTypeDoctor:
			prefixedName = "Dr. " + name
		case models.UserTypeOther:
			prefixedName = "Mr. " + name
		default:
			prefixedName = name
		}
	}

	spaced := strings.Join(strings.Split(code, ""), " ")
	body := fmt.Sprintf(otpEmailTemplate, prefixedName, spaced, time.Now().Year())

	m := gomail.NewMessage()
	m.SetHeader("From", configuration.Config.EmailUser)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your OTP Code")
	m.SetBody("text/html", body)

	d := gomail.NewDialer("smtp.gmail.com", 587, configuration.Config.EmailUser, configuration.Config.EmailPass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}

// SendReceiptEmail sends a payment confirmation with the receipt attached.
func SendReceiptEmail(msg, email, attachmentName string, attachmentData []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", configuration.Config.EmailUser)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Payment Confirmation mail")
	m.SetBody("text/plain", msg)

	m.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(attachmentData)
		return err
	}))

	d := gomail.NewDialer("smtp.gmail.com", 587, configuration.Config.EmailUser, configuration.Config.EmailPass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}

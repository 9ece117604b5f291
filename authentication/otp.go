package authentication

import (
	"errors"
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"
)

// ErrDispatch marks provider failures (SMS gateway, SMTP) as distinct from
// OTP validation failures. The stored code stays valid when dispatch fails.
var ErrDispatch = errors.New("failed to dispatch OTP")

// GenerateOTP returns a numeric code of the given length.
func GenerateOTP(length int) string {
	characters := "0123456789"
	otp := make([]byte, length)
	for i := range otp {
		otp[i] = characters[rand.Intn(len(characters))]
	}
	return string(otp)
}

// SMSSender delivers an OTP to a phone number.
type SMSSender interface {
	SendOTP(phone, code string) error
}

// EmailSender delivers an OTP to an email address. Name and userType drive
// the greeting in the mail template.
type EmailSender interface {
	SendOTP(email, name, userType, code string) error
}

// OtpService issues and verifies one-time codes. Storage and dispatch are
// pluggable so tests can swap both out.
type OtpService struct {
	Store OtpStore
	SMS   SMSSender
	Email EmailSender
}

func NewOtpService(store OtpStore, sms SMSSender, email EmailSender) *OtpService {
	return &OtpService{Store: store, SMS: sms, Email: email}
}

// IssuePhone generates a code for the phone number and dispatches it by SMS.
// The code is stored before dispatch, so a dispatch failure does not
// invalidate it.
func (s *OtpService) IssuePhone(phone string) error {
	code := GenerateOTP(6)
	if err := s.Store.Put(phone, code); err != nil {
		return err
	}
	if err := s.SMS.SendOTP(phone, code); err != nil {
		log.Error("Error sending OTP via SMS: ", err)
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}
	return nil
}

// IssueEmail generates a code for the email address and dispatches it by mail.
func (s *OtpService) IssueEmail(email, name, userType string) error {
	code := GenerateOTP(6)
	if err := s.Store.Put(email, code); err != nil {
		return err
	}
	if err := s.Email.SendOTP(email, name, userType, code); err != nil {
		log.Error("Error sending OTP via email: ", err)
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}
	return nil
}

// Verify validates the supplied code against the store.
func (s *OtpService) Verify(identifier, code string) (bool, string) {
	return s.Store.Verify(identifier, code)
}

package controllers

import (
	"fmt"

	"breboot/configuration"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender dispatches OTP codes as plain SMS messages.
type TwilioSender struct{}

func NewTwilioSender() *TwilioSender {
	return &TwilioSender{}
}

func (t *TwilioSender) SendOTP(phone, code string) error {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: configuration.Config.TwilioAccountSID,
		Password: configuration.Config.TwilioAuthToken,
	})

	message := fmt.Sprintf("Your OTP for Mobile verification is %s use this Code to validate your verification.", code)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("+91" + phone)
	params.SetFrom(configuration.Config.TwilioPhoneNumber)
	params.SetBody(message)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("error sending SMS: %v", err)
	}
	return nil
}

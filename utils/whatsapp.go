package utils

import (
	"fmt"
	"log"

	"schoolportal/config"

	"github.com/go-resty/resty/v2"
)

// whatsappTemplatePayload is the template-message body for the WhatsApp
// Business API. The OTP template takes a single body parameter (the code).
type whatsappTemplatePayload struct {
	MessagingProduct string           `json:"messaging_product"`
	To               string           `json:"to"`
	Type             string           `json:"type"`
	Template         whatsappTemplate `json:"template"`
}

type whatsappTemplate struct {
	Name       string              `json:"name"`
	Language   map[string]string   `json:"language"`
	Components []whatsappComponent `json:"components"`
}

type whatsappComponent struct {
	Type       string                   `json:"type"`
	Parameters []map[string]interface{} `json:"parameters"`
}

// SendOTPWhatsapp delivers an OTP code to a mobile number through the
// WhatsApp template API. Tests and offline environments can swap the
// function out.
var SendOTPWhatsapp = func(mobile, otp string) error {
	payload := whatsappTemplatePayload{
		MessagingProduct: "whatsapp",
		To:               mobile,
		Type:             "template",
		Template: whatsappTemplate{
			Name:     config.AppConfig.WhatsappTemplate,
			Language: map[string]string{"code": "en"},
			Components: []whatsappComponent{
				{
					Type: "body",
					Parameters: []map[string]interface{}{
						{"type": "text", "text": otp},
					},
				},
			},
		},
	}

	client := resty.New()
	resp, err := client.R().
		SetAuthToken(config.AppConfig.WhatsappApiToken).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(config.AppConfig.WhatsappApiURL + "/messages")

	if err != nil {
		log.Printf("Error while sending OTP via WhatsApp: %v", err)
		return err
	}
	if resp.IsError() {
		log.Printf("Failed to send OTP, response code: %d, body: %s", resp.StatusCode(), resp.String())
		return fmt.Errorf("failed to send OTP, code: %d", resp.StatusCode())
	}

	log.Println("OTP sent successfully to", mobile)
	return nil
}

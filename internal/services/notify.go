package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lodestone-dev/lodestone/internal/models"
)

type WebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type WebhookEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       int            `json:"color"`
	Fields      []WebhookField `json:"fields"`
	Timestamp   string         `json:"timestamp"`
}

type WebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []WebhookEmbed `json:"embeds"`
}

const (
	ColorBlue = 3447003 // new contact form

	Username = "Lodestone CMS"
)

// SendContactNotification pushes a contact-form summary to the admin webhook.
// Callers fire it off the request path; a delivery failure never blocks or
// fails the intake itself.
func SendContactNotification(webhookURL string, form models.ContactForm) error {
	if webhookURL == "" {
		return nil
	}

	fields := []WebhookField{
		{Name: "Name", Value: form.Name, Inline: true},
		{Name: "Email", Value: form.Email, Inline: true},
		{Name: "Service", Value: form.Service, Inline: true},
		{Name: "Message", Value: form.Message, Inline: false},
	}

	if form.Company != nil && *form.Company != "" {
		fields = append(fields, WebhookField{Name: "Company", Value: *form.Company, Inline: true})
	}

	if form.Phone != nil && *form.Phone != "" {
		fields = append(fields, WebhookField{Name: "Phone", Value: *form.Phone, Inline: true})
	}

	payload := WebhookRequest{
		Username: Username,
		Embeds: []WebhookEmbed{
			{
				Title:       "New contact form received",
				Description: fmt.Sprintf("**%s** submitted a contact form for %s.", form.Name, form.Service),
				Color:       ColorBlue,
				Fields:      fields,
				Timestamp:   time.Now().Format(time.RFC3339),
			},
		},
	}

	return sendWebhook(webhookURL, payload)
}

func sendWebhook(webhookURL string, payload WebhookRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

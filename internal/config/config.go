// Package config loads service configuration from the environment. Required
// values are checked up front: the process refuses to start rather than
// sending unencrypted documents or misattributed email later.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the service needs at process start.
type Config struct {
	// HTTPAddr is the listen address for the boundary endpoints.
	HTTPAddr string
	// BaseURL is the public origin wizard links are built against.
	BaseURL string
	// ResendAPIKey authenticates against the email provider.
	ResendAPIKey string
	// EmailFrom is the sender address stamped on every outbound email.
	EmailFrom string
	// ReplyTo, when set, is the reply-to address on invite emails.
	ReplyTo string
	// PDFPassword encrypts the operator-facing report.
	PDFPassword string
	// Brand is the display name used in documents and email bodies.
	Brand string
}

// Load reads configuration from the environment (prefix CREDLINK_).
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CREDLINK")
	v.AutomaticEnv()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("brand", "DigitalNova Studio")

	cfg := Config{
		HTTPAddr:     v.GetString("http_addr"),
		BaseURL:      v.GetString("base_url"),
		ResendAPIKey: v.GetString("resend_api_key"),
		EmailFrom:    v.GetString("email_from"),
		ReplyTo:      v.GetString("reply_to"),
		PDFPassword:  v.GetString("pdf_password"),
		Brand:        v.GetString("brand"),
	}

	var missing []string
	for _, required := range []struct {
		name  string
		value string
	}{
		{"CREDLINK_RESEND_API_KEY", cfg.ResendAPIKey},
		{"CREDLINK_EMAIL_FROM", cfg.EmailFrom},
		{"CREDLINK_PDF_PASSWORD", cfg.PDFPassword},
	} {
		if strings.TrimSpace(required.value) == "" {
			missing = append(missing, required.name)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("config: missing required environment: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

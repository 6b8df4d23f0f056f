// Package config reads the environment-provided configuration. A local
// .env file is loaded when present; real deployments set the variables
// directly.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	// Port the payments server listens on.
	Port string
	// ChapaSecretKey is the server-held payment provider credential. The
	// proxies refuse to call the provider when it is empty.
	ChapaSecretKey string
	// SiteURL is the deployment's own origin for provider callback and
	// return URLs. Empty means derive it from the request.
	SiteURL string
	// ProviderBaseURL overrides the payment provider endpoint, mainly for
	// tests and local stubs.
	ProviderBaseURL string

	// PaymentsURL is where ordering clients reach the proxy endpoints.
	PaymentsURL string
	// DraftPath is the file holding the single persisted order draft.
	DraftPath string

	Email EmailSettings
}

type EmailSettings struct {
	BaseURL            string
	ServiceID          string
	CafeTemplateID     string
	CustomerTemplateID string
	PublicKey          string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            envOr("PORT", "8080"),
		ChapaSecretKey:  os.Getenv("CHAPA_SECRET_KEY"),
		SiteURL:         os.Getenv("SITE_URL"),
		ProviderBaseURL: envOr("CHAPA_BASE_URL", "https://api.chapa.co"),
		PaymentsURL:     envOr("PAYMENTS_URL", "http://localhost:8080"),
		DraftPath:       envOr("ORDER_DRAFT_PATH", defaultDraftPath()),
		Email: EmailSettings{
			BaseURL:            envOr("EMAIL_BASE_URL", "https://api.emailjs.com"),
			ServiceID:          os.Getenv("EMAIL_SERVICE_ID"),
			CafeTemplateID:     os.Getenv("EMAIL_CAFE_TEMPLATE_ID"),
			CustomerTemplateID: os.Getenv("EMAIL_CUSTOMER_TEMPLATE_ID"),
			PublicKey:          os.Getenv("EMAIL_PUBLIC_KEY"),
		},
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultDraftPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cherish_order_draft.json"
	}
	return filepath.Join(home, ".cherish", "order_draft.json")
}

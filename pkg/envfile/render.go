package envfile

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/aretw0/kosuke/pkg/domain"
)

// Default document names.
const (
	DefaultLocalName      = ".env"
	DefaultProductionName = ".env.prod"
)

const localAppURL = "http://localhost:3000"

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Fallback placeholders written for values that were never collected.
var placeholders = map[string]string{
	"NEXT_PUBLIC_CLERK_PUBLISHABLE_KEY": "pk_test_your_clerk_publishable_key_here",
	"CLERK_SECRET_KEY":                  "sk_test_your_clerk_secret_key_here",
	"CLERK_WEBHOOK_SECRET":              "whsec_your_clerk_webhook_secret_here",
	"POLAR_ACCESS_TOKEN":                "polar_oat_your_polar_token_here",
	"POLAR_ORGANIZATION_ID":             "",
	"POLAR_PRO_PRODUCT_ID":              "",
	"POLAR_BUSINESS_PRODUCT_ID":         "",
	"POLAR_WEBHOOK_SECRET":              "polar_webhook_secret_here",
	"NEXT_PUBLIC_SENTRY_DSN":            "https://your-sentry-dsn-here.ingest.sentry.io/project-id",
	"RESEND_API_KEY":                    "re_your_resend_api_key_here",
	"CRON_SECRET":                       "generated_cron_secret_here",
}

// Renderer implements ports.Renderer.
type Renderer struct {
	localName      string
	productionName string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLocalName overrides the local document name.
func WithLocalName(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.localName = name
		}
	}
}

// WithProductionName overrides the production document name.
func WithProductionName(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.productionName = name
		}
	}
}

// NewRenderer creates a renderer with the default document names.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		localName:      DefaultLocalName,
		productionName: DefaultProductionName,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the local and the production documents, in that order.
func (r *Renderer) Render(p *domain.SetupProgress) ([]domain.Document, error) {
	local, err := r.RenderLocal(p)
	if err != nil {
		return nil, err
	}
	prod, err := r.RenderProduction(p)
	if err != nil {
		return nil, err
	}
	return []domain.Document{local, prod}, nil
}

// RenderLocal renders the local development document.
func (r *Renderer) RenderLocal(p *domain.SetupProgress) (domain.Document, error) {
	data := newValues(p)
	data.ResendFromName = lookup(p.APIKeys, domain.KeyResendFromName, "Kosuke Template")
	data.AppURL = localAppURL
	return r.execute("local.env.tmpl", r.localName, data)
}

// RenderProduction renders the production (Vercel) document.
func (r *Renderer) RenderProduction(p *domain.SetupProgress) (domain.Document, error) {
	data := newValues(p)
	data.ResendFromName = lookup(p.APIKeys, domain.KeyResendFromName, "Your App Name")
	data.AppURL = localAppURL
	if vercel, ok := p.ServiceConfigs[domain.ServiceVercel]; ok {
		data.AppURL = lookup(vercel.Credentials, domain.CredProjectURL, localAppURL)
	}
	return r.execute("production.env.tmpl", r.productionName, data)
}

func (r *Renderer) execute(tmpl, name string, data values) (domain.Document, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, tmpl, data); err != nil {
		return domain.Document{}, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return domain.Document{Name: name, Content: buf.String()}, nil
}

// values is the template data shared by both documents.
type values struct {
	ClerkPublishableKey    string
	ClerkSecretKey         string
	ClerkWebhookSecret     string
	PolarAccessToken       string
	PolarEnvironment       string
	PolarOrganizationID    string
	PolarProProductID      string
	PolarBusinessProductID string
	PolarWebhookSecret     string
	SentryDSN              string
	ResendAPIKey           string
	ResendFromEmail        string
	ResendFromName         string
	ResendReplyTo          string
	AppURL                 string
	CronSecret             string
}

func newValues(p *domain.SetupProgress) values {
	keys := p.APIKeys
	var polar map[string]string
	if cfg, ok := p.ServiceConfigs[domain.ServicePolar]; ok {
		polar = cfg.Credentials
	}

	return values{
		ClerkPublishableKey:    lookup(keys, domain.KeyClerkPublishableKey, placeholders["NEXT_PUBLIC_CLERK_PUBLISHABLE_KEY"]),
		ClerkSecretKey:         lookup(keys, domain.KeyClerkSecretKey, placeholders["CLERK_SECRET_KEY"]),
		ClerkWebhookSecret:     lookup(keys, domain.KeyClerkWebhookSecret, placeholders["CLERK_WEBHOOK_SECRET"]),
		PolarAccessToken:       lookup(keys, domain.KeyPolarAccessToken, placeholders["POLAR_ACCESS_TOKEN"]),
		PolarEnvironment:       lookup(polar, domain.CredEnvironment, "sandbox"),
		PolarOrganizationID:    lookup(polar, domain.CredOrganizationSlug, ""),
		PolarProProductID:      lookup(polar, domain.CredProProductID, ""),
		PolarBusinessProductID: lookup(polar, domain.CredBusinessProductID, ""),
		PolarWebhookSecret:     lookup(keys, domain.KeyPolarWebhookSecret, placeholders["POLAR_WEBHOOK_SECRET"]),
		SentryDSN:              lookup(keys, domain.KeySentryDSN, placeholders["NEXT_PUBLIC_SENTRY_DSN"]),
		ResendAPIKey:           lookup(keys, domain.KeyResendAPIKey, placeholders["RESEND_API_KEY"]),
		ResendFromEmail:        lookup(keys, domain.KeyResendFromEmail, "onboarding@resend.dev"),
		ResendReplyTo:          keys[domain.KeyResendReplyTo],
		CronSecret:             lookup(keys, domain.KeyCronSecret, placeholders["CRON_SECRET"]),
	}
}

// lookup reads m[key] and falls back when the key is absent. Reading a nil map is fine.
func lookup(m map[string]string, key, fallback string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

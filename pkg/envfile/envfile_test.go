package envfile_test

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/envfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeProgress() *domain.SetupProgress {
	p := domain.NewProgress()
	p.ProjectName = "my-app"
	p.CurrentStep = 9
	p.APIKeys = map[string]string{
		domain.KeyGitHubRepoURL:       "https://github.com/alice/my-app",
		domain.KeyPolarAccessToken:    "polar_oat_abc",
		domain.KeyPolarWebhookSecret:  "polar_whsec",
		domain.KeyClerkPublishableKey: "pk_test_abc",
		domain.KeyClerkSecretKey:      "sk_test_abc",
		domain.KeyClerkWebhookSecret:  "whsec_abc",
		domain.KeyResendAPIKey:        "re_abc",
		domain.KeyResendFromEmail:     "hello@my-app.dev",
		domain.KeyResendFromName:      "My App",
		domain.KeyResendReplyTo:       "support@my-app.dev",
		domain.KeySentryDSN:           "https://k@o1.ingest.sentry.io/7",
		domain.KeyCronSecret:          "c2VjcmV0+/==",
	}
	p.SetService(domain.ServiceVercel, domain.ServiceConfig{
		Name:        "Vercel Project",
		URL:         "https://my-app.vercel.app",
		Credentials: map[string]string{domain.CredProjectURL: "https://my-app.vercel.app"},
	})
	p.SetService(domain.ServicePolar, domain.ServiceConfig{
		Name: "Polar Billing",
		Credentials: map[string]string{
			domain.CredEnvironment:       "production",
			domain.CredOrganizationSlug:  "my-app-org",
			domain.CredProProductID:      "prod_pro",
			domain.CredBusinessProductID: "prod_biz",
		},
	})
	return p
}

func TestRenderer_Render(t *testing.T) {
	docs, err := envfile.NewRenderer().Render(completeProgress())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, ".env", docs[0].Name)
	assert.Equal(t, ".env.prod", docs[1].Name)

	local, err := envfile.Parse(docs[0].Content)
	require.NoError(t, err)
	assert.Equal(t, "pk_test_abc", local["NEXT_PUBLIC_CLERK_PUBLISHABLE_KEY"])
	assert.Equal(t, "production", local["POLAR_ENVIRONMENT"])
	assert.Equal(t, "prod_pro", local["POLAR_PRO_PRODUCT_ID"])
	assert.Equal(t, "http://localhost:3000", local["NEXT_PUBLIC_APP_URL"])
	assert.Equal(t, "postgres", local["POSTGRES_USER"])
	assert.Equal(t, "support@my-app.dev", local["RESEND_REPLY_TO"])
	assert.Equal(t, "c2VjcmV0+/==", local["CRON_SECRET"])
	assert.NotContains(t, local, "POLAR_ORGANIZATION_ID")

	prod, err := envfile.Parse(docs[1].Content)
	require.NoError(t, err)
	assert.Equal(t, "https://my-app.vercel.app", prod["NEXT_PUBLIC_APP_URL"])
	assert.Equal(t, "my-app-org", prod["POLAR_ORGANIZATION_ID"])
	assert.Equal(t, "production", prod["NODE_ENV"])
	assert.Equal(t, "My App", prod["RESEND_FROM_NAME"])
	assert.Equal(t, "https://k@o1.ingest.sentry.io/7", prod["NEXT_PUBLIC_SENTRY_DSN"])
	assert.Empty(t, envfile.Placeholders(prod))
	assert.Empty(t, envfile.Placeholders(local))
}

func TestRenderer_Fallbacks(t *testing.T) {
	p := domain.NewProgress()
	p.ProjectName = "my-app"
	before := p.Clone()

	r := envfile.NewRenderer()
	prodDoc, err := r.RenderProduction(p)
	require.NoError(t, err)
	assert.Equal(t, before, p, "rendering never mutates the progress")

	assert.Contains(t, prodDoc.Content, "\n# RESEND_REPLY_TO=support@yourdomain.com\n")
	assert.Contains(t, prodDoc.Content, "# VERCEL PRODUCTION ENVIRONMENT VARIABLES")

	prod, err := envfile.Parse(prodDoc.Content)
	require.NoError(t, err)
	assert.Equal(t, "pk_test_your_clerk_publishable_key_here", prod["NEXT_PUBLIC_CLERK_PUBLISHABLE_KEY"])
	assert.Equal(t, "sandbox", prod["POLAR_ENVIRONMENT"])
	assert.Equal(t, "http://localhost:3000", prod["NEXT_PUBLIC_APP_URL"])
	assert.Equal(t, "Your App Name", prod["RESEND_FROM_NAME"])
	assert.Equal(t, "onboarding@resend.dev", prod["RESEND_FROM_EMAIL"])
	assert.NotContains(t, prod, "RESEND_REPLY_TO")

	assert.Equal(t, []string{
		"CLERK_SECRET_KEY",
		"CLERK_WEBHOOK_SECRET",
		"CRON_SECRET",
		"NEXT_PUBLIC_CLERK_PUBLISHABLE_KEY",
		"NEXT_PUBLIC_SENTRY_DSN",
		"POLAR_ACCESS_TOKEN",
		"POLAR_BUSINESS_PRODUCT_ID",
		"POLAR_ORGANIZATION_ID",
		"POLAR_PRO_PRODUCT_ID",
		"POLAR_WEBHOOK_SECRET",
		"RESEND_API_KEY",
	}, envfile.Placeholders(prod))

	localDoc, err := r.RenderLocal(p)
	require.NoError(t, err)
	local, err := envfile.Parse(localDoc.Content)
	require.NoError(t, err)
	assert.Equal(t, "Kosuke Template", local["RESEND_FROM_NAME"])
}

func TestRenderer_Names(t *testing.T) {
	r := envfile.NewRenderer(envfile.WithLocalName(".env.local"), envfile.WithProductionName(""))
	docs, err := r.Render(domain.NewProgress())
	require.NoError(t, err)
	assert.Equal(t, ".env.local", docs[0].Name)
	assert.Equal(t, ".env.prod", docs[1].Name)
}

func TestFileWriter(t *testing.T) {
	dir := t.TempDir()
	w := envfile.NewFileWriter(dir)

	err := w.Write(context.Background(),
		domain.Document{Name: ".env", Content: "A=1\n"},
		domain.Document{Name: ".env.prod", Content: "B=2\n"},
	)
	require.NoError(t, err)

	values, err := envfile.ParseFile(w.Path(".env.prod"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"B": "2"}, values)

	info, err := os.Stat(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileWriter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := envfile.NewFileWriter(t.TempDir()).Write(ctx, domain.Document{Name: ".env"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateSecret(t *testing.T) {
	a, err := envfile.GenerateSecret(32)
	require.NoError(t, err)
	b, err := envfile.GenerateSecret(32)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.NotEqual(t, a, b)
}

package domain

// Credential keys stored in SetupProgress.APIKeys. Each key is owned by exactly one step.
const (
	KeyGitHubRepoURL       = "github_repo_url"
	KeyPolarAccessToken    = "polar_access_token"
	KeyPolarWebhookSecret  = "polar_webhook_secret"
	KeyClerkPublishableKey = "clerk_publishable_key"
	KeyClerkSecretKey      = "clerk_secret_key"
	KeyClerkWebhookSecret  = "clerk_webhook_secret"
	KeyResendAPIKey        = "resend_api_key"
	KeyResendFromEmail     = "resend_from_email"
	KeyResendFromName      = "resend_from_name"
	KeyResendReplyTo       = "resend_reply_to"
	KeySentryDSN           = "sentry_dsn"
	KeyCronSecret          = "cron_secret"
)

// Credential keys stored in ServiceConfig.Credentials.
const (
	CredProjectURL        = "project_url"
	CredDashboardURL      = "dashboard_url"
	CredEnvironment       = "environment"
	CredOrganizationSlug  = "organization_slug"
	CredProProductID      = "pro_product_id"
	CredBusinessProductID = "business_product_id"
)

// ServiceVercel and ServicePolar are the keys used in SetupProgress.ServiceConfigs.
const (
	ServiceVercel = "vercel"
	ServicePolar  = "polar"
)

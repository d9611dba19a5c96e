package validate_test

import (
	"testing"

	"github.com/aretw0/kosuke/pkg/validate"
	"github.com/stretchr/testify/assert"
)

func TestGitHubRepoURL(t *testing.T) {
	check := validate.GitHubRepoURL("foo-bar")

	assert.NoError(t, check("https://github.com/alice/foo-bar"))
	assert.NoError(t, check("https://github.com/alice/foo-bar/"))
	assert.Error(t, check("https://github.com/alice/foo-bar/extra"))
	assert.Error(t, check("https://github.com/alice/foo-baz"))
	assert.Error(t, check("http://github.com/alice/foo-bar"))
	assert.Error(t, check("https://github.com/foo-bar"))
}

func TestGitHubRepoURL_QuotesProject(t *testing.T) {
	check := validate.GitHubRepoURL("a.b")
	assert.NoError(t, check("https://github.com/alice/a.b"))
	assert.Error(t, check("https://github.com/alice/aXb"))
}

func TestVercelDashboardURL(t *testing.T) {
	check := validate.VercelDashboardURL("my-app")

	assert.NoError(t, check("https://vercel.com/alice/my-app"))
	assert.Error(t, check("https://vercel.app/alice/my-app"))
	assert.Error(t, check("https://vercel.com/alice/other"))
}

func TestPrefix(t *testing.T) {
	clerk := validate.Prefix(validate.PrefixClerkPublishable, validate.PrefixClerkPublishableLv)

	assert.NoError(t, clerk("pk_test_abc"))
	assert.NoError(t, clerk("pk_live_abc"))
	err := clerk("sk_test_abc")
	if assert.Error(t, err) {
		assert.Equal(t, "must start with pk_test_ or pk_live_", err.Error())
	}

	assert.NoError(t, validate.Prefix(validate.PrefixPolarToken)("polar_oat_123"))
	assert.Error(t, validate.Prefix(validate.PrefixWebhookSecret)("secret"))
	assert.NoError(t, validate.Prefix(validate.PrefixResendKey)("re_123"))
}

func TestSentryDSN(t *testing.T) {
	assert.NoError(t, validate.SentryDSN("https://abc@o1.ingest.sentry.io/42"))
	assert.Error(t, validate.SentryDSN("http://abc@o1.ingest.sentry.io/42"))
	assert.Error(t, validate.SentryDSN("https://sentry.example.com/42"))
}

func TestNonEmpty(t *testing.T) {
	assert.ErrorIs(t, validate.NonEmpty("   "), validate.ErrEmpty)
	assert.NoError(t, validate.NonEmpty("x"))
}

func TestOptionalEmail(t *testing.T) {
	check := validate.Optional(validate.Email)
	assert.NoError(t, check(""))
	assert.NoError(t, check("support@example.com"))
	assert.Error(t, check("support"))
	assert.Error(t, check("a@b@c.com"))
}

func TestYesNo(t *testing.T) {
	for in, want := range map[string]bool{"y": true, "YES": true, " n ": false, "no": false} {
		got, err := validate.YesNo(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := validate.YesNo("maybe")
	assert.Error(t, err)
}

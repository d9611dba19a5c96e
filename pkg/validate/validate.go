// Package validate holds the input predicates used by the onboarding steps.
// Each predicate returns nil or an error describing what the operator should fix.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Token prefixes issued by the providers.
const (
	PrefixPolarToken         = "polar_oat_"
	PrefixClerkPublishable   = "pk_test_"
	PrefixClerkPublishableLv = "pk_live_"
	PrefixClerkSecret        = "sk_test_"
	PrefixClerkSecretLive    = "sk_live_"
	PrefixWebhookSecret      = "whsec_"
	PrefixResendKey          = "re_"
)

const (
	vercelDashboardPrefix = "https://vercel.com/"
	sentryIngestHost      = ".ingest.sentry.io"
)

// ErrEmpty is returned when a required value is blank.
var ErrEmpty = errors.New("value is required")

// Func validates a single operator answer.
type Func func(string) error

// NonEmpty rejects blank input.
func NonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmpty
	}
	return nil
}

// Prefix accepts values starting with any of the given literal prefixes.
func Prefix(prefixes ...string) Func {
	return func(s string) error {
		for _, p := range prefixes {
			if strings.HasPrefix(s, p) {
				return nil
			}
		}
		return fmt.Errorf("must start with %s", strings.Join(prefixes, " or "))
	}
}

// GitHubRepoURL accepts https://github.com/<owner>/<project> with an optional
// trailing slash, where project is the literal slug.
func GitHubRepoURL(project string) Func {
	re := regexp.MustCompile(`^https://github\.com/[^/]+/` + regexp.QuoteMeta(project) + `/?$`)
	return func(s string) error {
		if !re.MatchString(s) {
			return fmt.Errorf("expected https://github.com/<owner>/%s", project)
		}
		return nil
	}
}

// VercelDashboardURL accepts a vercel.com URL that mentions the project slug.
func VercelDashboardURL(project string) Func {
	return func(s string) error {
		if !strings.HasPrefix(s, vercelDashboardPrefix) {
			return fmt.Errorf("must start with %s", vercelDashboardPrefix)
		}
		if !strings.Contains(s, project) {
			return fmt.Errorf("must contain the project name %q", project)
		}
		return nil
	}
}

// SentryDSN accepts an https DSN on the Sentry ingest host.
func SentryDSN(s string) error {
	if !strings.HasPrefix(s, "https://") || !strings.Contains(s, sentryIngestHost) {
		return fmt.Errorf("expected https://<key>@<org>%s/<project-id>", sentryIngestHost)
	}
	return nil
}

// Optional accepts an empty answer and otherwise defers to f.
func Optional(f Func) Func {
	return func(s string) error {
		if s == "" {
			return nil
		}
		return f(s)
	}
}

// Email is a loose shape check (one @, a dot in the domain).
func Email(s string) error {
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") || !strings.Contains(s[at+1:], ".") {
		return fmt.Errorf("%q is not an email address", s)
	}
	return nil
}

// YesNo parses y/yes/n/no (case-insensitive).
func YesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, errors.New("answer y or n")
}

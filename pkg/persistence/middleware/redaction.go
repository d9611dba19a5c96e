package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/ports"
)

// Mask replaces redacted values.
const Mask = "***"

// DefaultRedactPatterns match the credential names collected by the wizard.
var DefaultRedactPatterns = []string{"key", "secret", "token", "dsn"}

type redactionMiddleware struct {
	next     ports.ProgressStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware creates a middleware that masks, on Load, the values of
// api_keys and service credentials whose key matches any pattern (case-insensitive).
// Save passes through untouched so a redacting store never destroys saved secrets.
func NewRedactionMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile("(?i)" + p)
	}
	return func(next ports.ProgressStore) ports.ProgressStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}
}

func (m *redactionMiddleware) Save(ctx context.Context, progress *domain.SetupProgress) error {
	return m.next.Save(ctx, progress)
}

func (m *redactionMiddleware) Load(ctx context.Context) (*domain.SetupProgress, error) {
	p, err := m.next.Load(ctx)
	if err != nil {
		return nil, err
	}

	// Clone first: some stores hand out their own copy, others may not.
	masked := p.Clone()
	m.maskMap(masked.APIKeys)
	for name, cfg := range masked.ServiceConfigs {
		m.maskMap(cfg.Credentials)
		masked.ServiceConfigs[name] = cfg
	}
	return masked, nil
}

func (m *redactionMiddleware) Delete(ctx context.Context) error {
	return m.next.Delete(ctx)
}

func (m *redactionMiddleware) maskMap(values map[string]string) {
	for k, v := range values {
		if v == "" {
			continue
		}
		for _, p := range m.patterns {
			if p.MatchString(k) {
				values[k] = Mask
				break
			}
		}
	}
}

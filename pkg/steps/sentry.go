package steps

import (
	"context"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/ports"
	"github.com/aretw0/kosuke/pkg/validate"
)

// Sentry collects the error-monitoring DSN.
type Sentry struct {
	base
}

func NewSentry(pr ports.Prompter) *Sentry {
	return &Sentry{base: base{pr: pr}}
}

func (s *Sentry) ID() domain.StepID { return domain.StepSentry }
func (s *Sentry) Title() string     { return "Sentry Error Monitoring (Manual)" }

func (s *Sentry) Execute(ctx context.Context, p *domain.SetupProgress) (domain.StepOutcome, error) {
	return finish(s.run(ctx, p))
}

func (s *Sentry) run(ctx context.Context, p *domain.SetupProgress) error {
	v := view{Project: p.ProjectName}
	if err := s.show("sentry.project", v); err != nil {
		return err
	}
	if err := s.pause(ctx, "Press Enter when you've created the Sentry project..."); err != nil {
		return err
	}
	if err := s.show("sentry.dsn", v); err != nil {
		return err
	}

	dsn, err := s.ask(ctx, "Enter your Sentry DSN:", validate.SentryDSN)
	if err != nil {
		return err
	}
	p.APIKeys[domain.KeySentryDSN] = dsn

	s.pr.Notify(ports.NoticeSuccess, "Sentry error monitoring configured!")
	return nil
}

package steps

import (
	"context"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/ports"
	"github.com/aretw0/kosuke/pkg/validate"
)

// Clerk collects the authentication keys and the user-sync webhook secret.
type Clerk struct {
	base
	requiresVercel
}

func NewClerk(pr ports.Prompter) *Clerk {
	return &Clerk{base: base{pr: pr}}
}

func (s *Clerk) ID() domain.StepID { return domain.StepClerk }
func (s *Clerk) Title() string     { return "Clerk Authentication (Manual)" }

func (s *Clerk) Execute(ctx context.Context, p *domain.SetupProgress) (domain.StepOutcome, error) {
	return finish(s.run(ctx, p))
}

func (s *Clerk) run(ctx context.Context, p *domain.SetupProgress) error {
	v := view{Project: p.ProjectName, WebhookURL: appURL(p) + "/api/clerk/webhook"}

	if err := s.show("clerk.application", v); err != nil {
		return err
	}
	if err := s.pause(ctx, "Press Enter when you've created the Clerk application..."); err != nil {
		return err
	}

	publishable, err := s.ask(ctx, "Enter Clerk Publishable Key (pk_test_...):",
		validate.Prefix(validate.PrefixClerkPublishable, validate.PrefixClerkPublishableLv))
	if err != nil {
		return err
	}
	secret, err := s.ask(ctx, "Enter Clerk Secret Key (sk_test_...):",
		validate.Prefix(validate.PrefixClerkSecret, validate.PrefixClerkSecretLive))
	if err != nil {
		return err
	}

	if err := s.show("clerk.webhook", v); err != nil {
		return err
	}
	webhookSecret, err := s.ask(ctx, "Enter Clerk Webhook Signing Secret:", validate.Prefix(validate.PrefixWebhookSecret))
	if err != nil {
		return err
	}

	p.APIKeys[domain.KeyClerkPublishableKey] = publishable
	p.APIKeys[domain.KeyClerkSecretKey] = secret
	p.APIKeys[domain.KeyClerkWebhookSecret] = webhookSecret

	s.pr.Notify(ports.NoticeSuccess, "Clerk authentication configured!")
	return s.show("clerk.optional", v)
}

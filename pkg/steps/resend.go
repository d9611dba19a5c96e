package steps

import (
	"context"
	"fmt"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/identity"
	"github.com/aretw0/kosuke/pkg/ports"
	"github.com/aretw0/kosuke/pkg/validate"
)

// DefaultFromEmail is the shared Resend sender usable before a domain is verified.
const DefaultFromEmail = "onboarding@resend.dev"

// Resend collects the email API key and sender settings.
type Resend struct {
	base
}

func NewResend(pr ports.Prompter) *Resend {
	return &Resend{base: base{pr: pr}}
}

func (s *Resend) ID() domain.StepID { return domain.StepResend }
func (s *Resend) Title() string     { return "Resend Email Service (Manual)" }

func (s *Resend) Execute(ctx context.Context, p *domain.SetupProgress) (domain.StepOutcome, error) {
	return finish(s.run(ctx, p))
}

func (s *Resend) run(ctx context.Context, p *domain.SetupProgress) error {
	v := view{Project: p.ProjectName}
	if err := s.show("resend.account", v); err != nil {
		return err
	}
	if err := s.pause(ctx, "Press Enter when you've created your Resend account..."); err != nil {
		return err
	}

	if err := s.show("resend.key", v); err != nil {
		return err
	}
	apiKey, err := s.ask(ctx, "Enter your Resend API key:", validate.Prefix(validate.PrefixResendKey))
	if err != nil {
		return err
	}

	if err := s.show("resend.sender", v); err != nil {
		return err
	}
	fromEmail, err := s.askDefault(ctx, fmt.Sprintf("From email (press Enter for '%s'):", DefaultFromEmail), DefaultFromEmail, validate.Email)
	if err != nil {
		return err
	}
	displayName := identity.DisplayName(p.ProjectName)
	fromName, err := s.askDefault(ctx, fmt.Sprintf("From name (press Enter for '%s'):", displayName), displayName, validate.NonEmpty)
	if err != nil {
		return err
	}
	replyTo, err := s.ask(ctx, "Reply-to email (optional, press Enter to skip):", validate.Optional(validate.Email))
	if err != nil {
		return err
	}

	p.APIKeys[domain.KeyResendAPIKey] = apiKey
	p.APIKeys[domain.KeyResendFromEmail] = fromEmail
	p.APIKeys[domain.KeyResendFromName] = fromName
	if replyTo != "" {
		p.APIKeys[domain.KeyResendReplyTo] = replyTo
	} else {
		delete(p.APIKeys, domain.KeyResendReplyTo)
	}

	s.pr.Notify(ports.NoticeSuccess, "Resend email service configured!")
	return nil
}

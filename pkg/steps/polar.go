package steps

import (
	"context"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/ports"
	"github.com/aretw0/kosuke/pkg/validate"
)

const (
	polarSandboxDashboard    = "https://sandbox.polar.sh/dashboard"
	polarProductionDashboard = "https://polar.sh/dashboard"
)

// Polar guides the operator through the billing organization, the two
// subscription products, an API token and the billing webhook.
type Polar struct {
	base
	requiresVercel
}

func NewPolar(pr ports.Prompter) *Polar {
	return &Polar{base: base{pr: pr}}
}

func (s *Polar) ID() domain.StepID { return domain.StepPolar }
func (s *Polar) Title() string     { return "Polar Billing (Manual)" }

func (s *Polar) Execute(ctx context.Context, p *domain.SetupProgress) (domain.StepOutcome, error) {
	return finish(s.run(ctx, p))
}

func (s *Polar) run(ctx context.Context, p *domain.SetupProgress) error {
	sandbox, err := s.confirm(ctx, "Use sandbox environment for testing? (y/n):")
	if err != nil {
		return err
	}
	environment, dashboard := "production", polarProductionDashboard
	if sandbox {
		environment, dashboard = "sandbox", polarSandboxDashboard
	}

	v := view{
		Project:        p.ProjectName,
		PolarDashboard: dashboard,
		WebhookURL:     appURL(p) + "/api/billing/webhook",
	}

	if err := s.show("polar.organization", v); err != nil {
		return err
	}
	if err := s.pause(ctx, "Press Enter when you have an organization ready..."); err != nil {
		return err
	}
	if err := s.show("polar.pro", v); err != nil {
		return err
	}
	if err := s.pause(ctx, "Press Enter when you've created the Pro Plan..."); err != nil {
		return err
	}
	if err := s.show("polar.business", v); err != nil {
		return err
	}
	if err := s.pause(ctx, "Press Enter when you've created the Business Plan..."); err != nil {
		return err
	}

	orgSlug, err := s.ask(ctx, "Enter your organization slug (from the URL, e.g., 'my-awesome-app-org'):", validate.NonEmpty)
	if err != nil {
		return err
	}

	if err := s.show("polar.ids", v); err != nil {
		return err
	}
	proID, err := s.ask(ctx, "Enter Pro Plan Product ID:", validate.NonEmpty)
	if err != nil {
		return err
	}
	businessID, err := s.ask(ctx, "Enter Business Plan Product ID:", validate.NonEmpty)
	if err != nil {
		return err
	}

	if err := s.show("polar.token", v); err != nil {
		return err
	}
	token, err := s.ask(ctx, "Enter your Polar API token:", validate.Prefix(validate.PrefixPolarToken))
	if err != nil {
		return err
	}

	if err := s.show("polar.webhook", v); err != nil {
		return err
	}
	webhookSecret, err := s.ask(ctx, "Enter Polar Webhook Signing Secret:", validate.NonEmpty)
	if err != nil {
		return err
	}

	orgDashboard := dashboard + "/" + orgSlug
	p.SetService(domain.ServicePolar, domain.ServiceConfig{
		Name: "Polar Billing",
		URL:  orgDashboard,
		Credentials: map[string]string{
			domain.CredOrganizationSlug:  orgSlug,
			domain.CredProProductID:      proID,
			domain.CredBusinessProductID: businessID,
			domain.CredEnvironment:       environment,
			domain.CredDashboardURL:      orgDashboard,
		},
		WebhookURLs: []string{v.WebhookURL},
	})
	p.APIKeys[domain.KeyPolarAccessToken] = token
	p.APIKeys[domain.KeyPolarWebhookSecret] = webhookSecret

	s.pr.Notify(ports.NoticeSuccess, "Polar billing configured: "+orgDashboard)
	return nil
}

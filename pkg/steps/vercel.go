package steps

import (
	"context"
	"fmt"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/ports"
	"github.com/aretw0/kosuke/pkg/validate"
)

// Vercel guides the operator through importing the fork into a Vercel project
// and creating its Blob storage.
type Vercel struct {
	base
}

func NewVercel(pr ports.Prompter) *Vercel {
	return &Vercel{base: base{pr: pr}}
}

func (s *Vercel) ID() domain.StepID { return domain.StepVercel }
func (s *Vercel) Title() string     { return "Vercel Project (Manual)" }

func (s *Vercel) Execute(ctx context.Context, p *domain.SetupProgress) (domain.StepOutcome, error) {
	return finish(s.run(ctx, p))
}

func (s *Vercel) run(ctx context.Context, p *domain.SetupProgress) error {
	v := view{Project: p.ProjectName}
	if err := s.show("vercel.project", v); err != nil {
		return err
	}
	if err := s.pause(ctx, "Press Enter when the deployment has finished (even if failed)..."); err != nil {
		return err
	}

	if err := s.show("vercel.dashboard", v); err != nil {
		return err
	}
	prompt := fmt.Sprintf("Enter your Vercel project dashboard URL (e.g., https://vercel.com/username/%s):", p.ProjectName)
	dashboardURL, err := s.ask(ctx, prompt, validate.VercelDashboardURL(p.ProjectName))
	if err != nil {
		return err
	}

	projectURL := fmt.Sprintf("https://%s.vercel.app", p.ProjectName)
	s.pr.Notify(ports.NoticeInfo, fmt.Sprintf("Your app URL will be: %s (after successful redeploy)", projectURL))

	if err := s.show("vercel.blob", v); err != nil {
		return err
	}
	if err := s.pause(ctx, "Press Enter when you've created the Blob storage..."); err != nil {
		return err
	}

	p.SetService(domain.ServiceVercel, domain.ServiceConfig{
		Name: "Vercel Project",
		URL:  projectURL,
		Credentials: map[string]string{
			domain.CredProjectURL:   projectURL,
			domain.CredDashboardURL: dashboardURL,
		},
	})

	s.pr.Notify(ports.NoticeSuccess, "Vercel project configured: "+projectURL)
	return nil
}

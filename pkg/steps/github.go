package steps

import (
	"context"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/ports"
	"github.com/aretw0/kosuke/pkg/validate"
)

// GitHub guides the operator through forking the template repository.
type GitHub struct {
	base
	repo string
}

// NewGitHub creates the fork step for TemplateRepoURL.
func NewGitHub(pr ports.Prompter) *GitHub {
	return &GitHub{base: base{pr: pr}, repo: TemplateRepoURL}
}

func (s *GitHub) ID() domain.StepID { return domain.StepGitHub }
func (s *GitHub) Title() string     { return "GitHub Repository (Manual)" }

func (s *GitHub) Execute(ctx context.Context, p *domain.SetupProgress) (domain.StepOutcome, error) {
	return finish(s.run(ctx, p))
}

func (s *GitHub) run(ctx context.Context, p *domain.SetupProgress) error {
	if err := s.show("github.fork", view{Project: p.ProjectName, TemplateRepo: s.repo}); err != nil {
		return err
	}
	if err := s.pause(ctx, "Press Enter when you've completed the fork..."); err != nil {
		return err
	}

	url, err := s.ask(ctx, "Enter your forked repository URL:", validate.GitHubRepoURL(p.ProjectName))
	if err != nil {
		return err
	}
	p.APIKeys[domain.KeyGitHubRepoURL] = url

	s.pr.Notify(ports.NoticeSuccess, "GitHub repository configured: "+url)
	return nil
}

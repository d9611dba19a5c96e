package steps

import (
	"context"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/ports"
)

// Neon attaches a Neon database through the Vercel storage marketplace.
// Vercel injects POSTGRES_URL itself, so the step collects nothing.
type Neon struct {
	base
	requiresVercel
}

func NewNeon(pr ports.Prompter) *Neon {
	return &Neon{base: base{pr: pr}}
}

func (s *Neon) ID() domain.StepID { return domain.StepNeon }
func (s *Neon) Title() string     { return "Neon Database (Manual)" }

func (s *Neon) Execute(ctx context.Context, p *domain.SetupProgress) (domain.StepOutcome, error) {
	return finish(s.run(ctx, p))
}

func (s *Neon) run(ctx context.Context, p *domain.SetupProgress) error {
	if err := s.show("neon.database", view{Project: p.ProjectName}); err != nil {
		return err
	}
	if err := s.pause(ctx, "Press Enter when you've created the Neon database..."); err != nil {
		return err
	}
	s.pr.Notify(ports.NoticeSuccess, "Neon database configured - environment variables added automatically")
	return nil
}

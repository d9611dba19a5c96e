package steps

import (
	"context"
	"fmt"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/envfile"
	"github.com/aretw0/kosuke/pkg/ports"
)

// cronSecretBytes is the entropy of the generated CRON_SECRET.
const cronSecretBytes = 32

// VercelEnv generates the cron secret, writes the production environment
// document and walks the operator through pasting it into Vercel.
type VercelEnv struct {
	base
	requiresVercel
	renderer ProductionRenderer
	writer   ports.DocumentWriter
}

func NewVercelEnv(pr ports.Prompter, renderer ProductionRenderer, writer ports.DocumentWriter) *VercelEnv {
	return &VercelEnv{base: base{pr: pr}, renderer: renderer, writer: writer}
}

func (s *VercelEnv) ID() domain.StepID { return domain.StepVercelEnv }
func (s *VercelEnv) Title() string     { return "Vercel Environment Variables (Critical)" }

func (s *VercelEnv) Execute(ctx context.Context, p *domain.SetupProgress) (domain.StepOutcome, error) {
	return finish(s.run(ctx, p))
}

func (s *VercelEnv) run(ctx context.Context, p *domain.SetupProgress) error {
	if p.APIKeys[domain.KeyCronSecret] == "" {
		secret, err := envfile.GenerateSecret(cronSecretBytes)
		if err != nil {
			return fmt.Errorf("generate cron secret: %w", err)
		}
		p.APIKeys[domain.KeyCronSecret] = secret
		s.pr.Notify(ports.NoticeSuccess, "Generated secure CRON_SECRET for subscription syncing")
	}

	doc, err := s.renderer.RenderProduction(p)
	if err != nil {
		return fmt.Errorf("render production environment: %w", err)
	}
	if err := s.writer.Write(ctx, doc); err != nil {
		return fmt.Errorf("write %s: %w", doc.Name, err)
	}
	s.pr.Notify(ports.NoticeSuccess, doc.Name+" file generated successfully!")

	if err := s.show("vercel-env.upload", view{Project: p.ProjectName, Document: doc.Name}); err != nil {
		return err
	}
	if err := s.pause(ctx, "Press Enter when you've added all environment variables to Vercel..."); err != nil {
		return err
	}

	s.pr.Notify(ports.NoticeSuccess, "Vercel environment variables configured!")
	return nil
}

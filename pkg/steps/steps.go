package steps

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"text/template"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/ports"
	"github.com/aretw0/kosuke/pkg/validate"
)

// TemplateRepoURL is the repository operators fork in the first step.
const TemplateRepoURL = "https://github.com/filopedraz/kosuke-template"

// AbortReason is the outcome reason when the operator aborts at a prompt.
const AbortReason = "operator aborted"

//go:embed instructions/*.md
var instructionFS embed.FS

var instructions = template.Must(template.ParseFS(instructionFS, "instructions/*.md"))

// view is the data available to instruction templates.
type view struct {
	Project        string
	TemplateRepo   string
	PolarDashboard string
	WebhookURL     string
	Document       string
}

// ProductionRenderer renders the production environment document.
type ProductionRenderer interface {
	RenderProduction(progress *domain.SetupProgress) (domain.Document, error)
}

// Default returns the reference flow in execution order.
func Default(pr ports.Prompter, renderer ProductionRenderer, writer ports.DocumentWriter) []ports.StepHandler {
	return []ports.StepHandler{
		NewGitHub(pr),
		NewVercel(pr),
		NewNeon(pr),
		NewPolar(pr),
		NewClerk(pr),
		NewResend(pr),
		NewSentry(pr),
		NewVercelEnv(pr, renderer, writer),
	}
}

// base carries the operator I/O shared by every step.
type base struct {
	pr ports.Prompter
}

// show renders a named instruction block.
func (b base) show(name string, v view) error {
	var buf bytes.Buffer
	if err := instructions.ExecuteTemplate(&buf, name, v); err != nil {
		return fmt.Errorf("render instructions %q: %w", name, err)
	}
	b.pr.Show(buf.String())
	return nil
}

// ask re-prompts until check accepts the answer.
func (b base) ask(ctx context.Context, prompt string, check validate.Func) (string, error) {
	for {
		answer, err := b.pr.Ask(ctx, prompt)
		if err != nil {
			return "", err
		}
		if err := check(answer); err != nil {
			b.pr.Notify(ports.NoticeError, err.Error())
			continue
		}
		return answer, nil
	}
}

// askDefault returns def when the operator answers with an empty line.
func (b base) askDefault(ctx context.Context, prompt, def string, check validate.Func) (string, error) {
	answer, err := b.ask(ctx, prompt, validate.Optional(check))
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// confirm asks a y/n question until it gets a valid answer.
func (b base) confirm(ctx context.Context, prompt string) (bool, error) {
	for {
		answer, err := b.pr.Ask(ctx, prompt)
		if err != nil {
			return false, err
		}
		yes, err := validate.YesNo(answer)
		if err != nil {
			b.pr.Notify(ports.NoticeError, "Please enter 'y' or 'n'")
			continue
		}
		return yes, nil
	}
}

// pause waits for the operator to press Enter.
func (b base) pause(ctx context.Context, prompt string) error {
	_, err := b.pr.Ask(ctx, prompt)
	return err
}

// finish maps the error of a step body to an outcome.
func finish(err error) (domain.StepOutcome, error) {
	switch {
	case err == nil:
		return domain.Completed(), nil
	case errors.Is(err, ports.ErrUserAborted):
		return domain.Aborted(AbortReason), nil
	default:
		return domain.StepOutcome{}, err
	}
}

// appURL returns the deployment URL recorded by the vercel step.
func appURL(p *domain.SetupProgress) string {
	if cfg, ok := p.Service(domain.ServiceVercel); ok {
		if u := cfg.Credentials[domain.CredProjectURL]; u != "" {
			return u
		}
	}
	return "https://" + p.ProjectName + ".vercel.app"
}

// requiresVercel is embedded by steps that read the vercel service config.
type requiresVercel struct{}

func (requiresVercel) Requires() []domain.StepID {
	return []domain.StepID{domain.StepVercel}
}

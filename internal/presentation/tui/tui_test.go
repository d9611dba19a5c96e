package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/kosuke/internal/presentation/tui"
	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionSummary(t *testing.T) {
	p := domain.NewProgress()
	p.ProjectName = "demo"
	p.CompletedServices = []domain.StepID{domain.StepGitHub, domain.StepVercel, domain.StepVercelEnv}
	p.APIKeys[domain.KeyGitHubRepoURL] = "https://github.com/alice/demo/"
	p.SetService(domain.ServiceVercel, domain.ServiceConfig{Name: "Vercel Project", URL: "https://demo.vercel.app"})

	out := tui.CompletionSummary(p, ".env", ".env.prod")

	assert.Contains(t, out, "Project Name: `demo`")
	assert.Contains(t, out, "- GitHub Repository: https://github.com/alice/demo/")
	assert.Contains(t, out, "- Vercel Project: https://demo.vercel.app")
	assert.Contains(t, out, "Subscription Sync Cron")
	assert.Contains(t, out, "git clone https://github.com/alice/demo.git")
	assert.NotContains(t, out, "Polar Billing")
}

func TestNoticeStyler(t *testing.T) {
	assert.Contains(t, tui.NoticeStyler(ports.NoticeError, "bad input"), "bad input")
	assert.Contains(t, tui.NoticeStyler(ports.NoticeSuccess, "done"), "done")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "abort")
}

func TestNewRenderer(t *testing.T) {
	render := tui.NewRenderer()
	require.NotNil(t, render)

	out, err := render("**Step 1**")
	require.NoError(t, err)
	assert.Contains(t, out, "Step 1")
}

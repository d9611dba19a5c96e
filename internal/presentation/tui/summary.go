package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/kosuke/pkg/domain"
)

// CompletionSummary describes a finished setup as markdown. localName and
// prodName are the generated document names.
func CompletionSummary(p *domain.SetupProgress, localName, prodName string) string {
	var b strings.Builder

	b.WriteString("# 🎉 Interactive Setup Complete!\n\n")
	b.WriteString("## 📊 Project Summary\n\n")
	fmt.Fprintf(&b, "Project Name: `%s`\n\n", p.ProjectName)

	b.WriteString("## ✅ Completed Setup\n\n")
	for _, id := range p.CompletedServices {
		for _, line := range completedLines(p, id) {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}

	repo := p.APIKeys[domain.KeyGitHubRepoURL]
	b.WriteString("\n## 📁 Next Steps\n\n")
	b.WriteString("1. Your Vercel project is ready. Environment variables are configured and the subscription sync runs every 6 hours; trigger a redeploy from the dashboard if needed.\n")
	fmt.Fprintf(&b, "2. Clone your repository: `git clone %s.git`\n", strings.TrimSuffix(repo, "/"))
	fmt.Fprintf(&b, "3. Copy the environment files into the clone: `%s` and `%s`\n", localName, prodName)
	b.WriteString("4. Set up the local database: `docker-compose up -d postgres`\n")
	b.WriteString("5. Install dependencies: `pnpm install`\n")
	b.WriteString("6. Start development: `pnpm run dev`\n\n")
	fmt.Fprintf(&b, "- `%s` is for local development (localhost, docker-compose)\n", localName)
	fmt.Fprintf(&b, "- `%s` is the production reference (already in Vercel)\n\n", prodName)

	b.WriteString("**🚀 Your kosuke template is ready to use!**\n")
	return b.String()
}

func completedLines(p *domain.SetupProgress, id domain.StepID) []string {
	switch id {
	case domain.StepGitHub:
		return []string{"GitHub Repository: " + p.APIKeys[domain.KeyGitHubRepoURL]}
	case domain.StepVercel:
		cfg, _ := p.Service(domain.ServiceVercel)
		return []string{"Vercel Project: " + cfg.URL, "Blob Storage: configured"}
	case domain.StepNeon:
		return []string{"Neon Database: integrated through Vercel"}
	case domain.StepPolar:
		cfg, _ := p.Service(domain.ServicePolar)
		return []string{"Polar Billing: " + cfg.URL}
	case domain.StepClerk:
		return []string{"Clerk Authentication: application created"}
	case domain.StepResend:
		return []string{"Resend Email Service: API key configured"}
	case domain.StepSentry:
		return []string{"Sentry Error Monitoring: project created"}
	case domain.StepVercelEnv:
		return []string{"Vercel Environment Variables: configured", "Subscription Sync Cron: secure token generated"}
	default:
		return []string{string(id)}
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/kosuke"
	"github.com/aretw0/kosuke/internal/config"
	"github.com/aretw0/kosuke/internal/metrics"
	"github.com/aretw0/kosuke/internal/presentation/tui"
	kosukehttp "github.com/aretw0/kosuke/pkg/adapters/http"
	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/envfile"
	"github.com/aretw0/kosuke/pkg/ports"
	"github.com/aretw0/kosuke/pkg/runner"
)

// WizardOptions contains the configuration for a wizard run.
type WizardOptions struct {
	Config *config.Config
	In     io.Reader
	Out    io.Writer
	// Styled enables the banner, glamour markdown and colored notices.
	Styled bool
}

// RunWizard runs the onboarding wizard until it completes, the operator
// aborts, or SIGINT/SIGTERM arrives. Progress survives every outcome but
// success.
func RunWizard(opts WizardOptions) error {
	sc := NewSignalContext(context.Background())
	defer sc.Cancel()
	return runWizard(sc, sc.Signal, opts)
}

func runWizard(ctx context.Context, signal func() os.Signal, opts WizardOptions) error {
	cfg := opts.Config
	logger := createLogger(cfg.Debug)

	m := metrics.New()

	store, closeStore, err := openWizardStore(ctx, cfg, logger, m.Hooks())
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("failed to close progress store", "err", err)
		}
	}()

	if cfg.MetricsAddr != "" {
		metricsCtx, stop := context.WithCancel(ctx)
		defer stop()
		go func() {
			if err := kosukehttp.Serve(metricsCtx, cfg.MetricsAddr, m.Handler(), logger); err != nil {
				logger.Warn("metrics listener stopped", "addr", cfg.MetricsAddr, "err", err)
			}
		}()
	}

	prompterOpts := []runner.TextPrompterOption{}
	if opts.Styled {
		tui.PrintBanner(opts.Out)
		prompterOpts = append(prompterOpts,
			runner.WithPrompterRenderer(tui.NewRenderer()),
			runner.WithNoticeStyler(tui.NoticeStyler),
		)
	}
	prompter := runner.NewTextPrompter(opts.In, opts.Out, prompterOpts...)

	wizardOpts := []kosuke.Option{
		kosuke.WithStore(store),
		kosuke.WithPrompter(prompter),
		kosuke.WithRenderer(envfile.NewRenderer(
			envfile.WithLocalName(cfg.LocalEnvFile),
			envfile.WithProductionName(cfg.ProductionEnvFile),
		)),
		kosuke.WithWriter(envfile.NewFileWriter(cfg.OutputDir)),
		kosuke.WithLogger(logger),
		kosuke.WithLifecycleHooks(m.Hooks()),
	}
	if cfg.Debug {
		wizardOpts = append(wizardOpts, kosuke.WithLifecycleHooks(createDebugHooks(logger)))
	}

	wizard, err := kosuke.New(wizardOpts...)
	if err != nil {
		return err
	}
	logger.Debug("Wizard Started", "run_id", wizard.RunID(), "backend", cfg.Backend, "steps", wizard.TotalSteps())

	p, err := wizard.Run(ctx)
	if err != nil {
		reportFailure(logger, wizard.RunID(), err)
		logCompletion(opts.Out, err, prompter.Awaiting(), signal())
		return &ExitError{Code: 1, Err: err}
	}

	prompter.Show(tui.CompletionSummary(p, cfg.LocalEnvFile, cfg.ProductionEnvFile))
	return nil
}

// reportFailure logs errors that are not an operator decision.
func reportFailure(logger *slog.Logger, runID string, err error) {
	if isInterrupted(err) || errors.Is(err, domain.ErrAborted) {
		logger.Info("setup stopped by operator", "run_id", runID, "reason", err)
		return
	}
	logger.Error("setup failed", "run_id", runID, "err", err)
}

// notify prints a one-line status notice, styled when requested.
func notify(w io.Writer, styled bool, level ports.NoticeLevel, format string, args ...any) {
	styler := runner.PlainNotice
	if styled {
		styler = tui.NoticeStyler
	}
	fmt.Fprintln(w, styler(level, fmt.Sprintf(format, args...)))
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/kosuke/internal/logging"
	"github.com/aretw0/kosuke/pkg/domain"
)

// SignalContext is cancelled by SIGINT or SIGTERM and remembers which one.
type SignalContext struct {
	context.Context
	Cancel func()

	sigCh chan os.Signal
	mu    sync.Mutex
	sig   os.Signal
}

// NewSignalContext derives a SignalContext from parent.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go sc.wait()
	return sc
}

func (sc *SignalContext) wait() {
	defer signal.Stop(sc.sigCh)
	select {
	case sig := <-sc.sigCh:
		sc.mu.Lock()
		sc.sig = sig
		sc.mu.Unlock()
		sc.Cancel()
	case <-sc.Done():
	}
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sig
}

// ExitError carries the process exit code for an error that was already
// reported to the operator.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return 1
}

// createLogger configures the application logger.
// It always writes to Stderr, away from the wizard prompts.
func createLogger(debug bool) *slog.Logger {
	return logging.ForDebug(debug)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Enter Step", "step_id", e.StepID, "position", e.Position)
		},
		OnStepComplete: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Complete Step", "step_id", e.StepID)
		},
		OnStepAbort: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Abort Step", "step_id", e.StepID, "reason", e.Reason)
		},
	}
}

func isInterrupted(err error) bool {
	return errors.Is(err, domain.ErrInterrupted) || errors.Is(err, context.Canceled)
}

// logCompletion reports how the wizard ended.
func logCompletion(w io.Writer, err error, promptActive bool, sig os.Signal) {
	if err == nil {
		return
	}

	switch {
	case isInterrupted(err):
		if sig == os.Interrupt {
			if promptActive {
				fmt.Fprintf(w, "[CTRL+C]\n")
			} else {
				fmt.Fprintf(w, "> [CTRL+C]\n")
			}
		} else {
			fmt.Fprintf(w, "\n")
		}
		printSystemMessage(w, "Setup cancelled by user")
	case errors.Is(err, domain.ErrAborted):
		printSystemMessage(w, "Setup aborted")
	default:
		printSystemMessage(w, "Setup failed: %v", err)
	}
	printSystemMessage(w, "Progress has been saved. Run again to resume.")
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/kosuke/internal/config"
	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/envfile"
	"github.com/aretw0/kosuke/pkg/ports"
)

// ShowProgress prints the saved progress as JSON with secrets masked.
func ShowProgress(ctx context.Context, cfg *config.Config, w io.Writer) error {
	store, closeStore, err := openStore(ctx, cfg, createLogger(cfg.Debug))
	if err != nil {
		return err
	}
	defer closeStore()

	p, err := redacted(store, cfg).Load(ctx)
	if errors.Is(err, domain.ErrProgressNotFound) {
		fmt.Fprintln(w, "No setup in progress.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error loading progress: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling progress: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// ResetProgress deletes the saved progress so the next run starts fresh.
func ResetProgress(ctx context.Context, cfg *config.Config, w io.Writer) error {
	store, closeStore, err := openStore(ctx, cfg, createLogger(cfg.Debug))
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Delete(ctx); err != nil {
		return fmt.Errorf("error removing progress: %w", err)
	}
	fmt.Fprintln(w, "Progress cleared.")
	return nil
}

// CheckEnvFiles reports generated environment files that are missing or
// still carry placeholder values. It fails when anything needs attention.
func CheckEnvFiles(cfg *config.Config, w io.Writer, styled bool) error {
	pending := 0
	for _, name := range []string{cfg.LocalEnvFile, cfg.ProductionEnvFile} {
		path := filepath.Join(cfg.OutputDir, name)
		values, err := envfile.ParseFile(path)
		if errors.Is(err, os.ErrNotExist) {
			notify(w, styled, ports.NoticeWarning, "%s: not generated yet", path)
			pending++
			continue
		}
		if err != nil {
			return err
		}

		keys := envfile.Placeholders(values)
		if len(keys) == 0 {
			notify(w, styled, ports.NoticeSuccess, "%s: all values set", path)
			continue
		}
		pending++
		notify(w, styled, ports.NoticeError, "%s: %d placeholder value(s)", path, len(keys))
		for _, key := range keys {
			fmt.Fprintf(w, "  - %s\n", key)
		}
	}

	if pending > 0 {
		return &ExitError{Code: 1, Err: fmt.Errorf("%d environment file(s) need attention", pending)}
	}
	return nil
}

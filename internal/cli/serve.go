package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/aretw0/kosuke"
	"github.com/aretw0/kosuke/internal/config"
	kosukehttp "github.com/aretw0/kosuke/pkg/adapters/http"
	"github.com/aretw0/kosuke/pkg/adapters/mcp"
	"github.com/joho/godotenv"
)

// LoadDotEnv exports the variables of a .env file into the process
// environment. A missing file is not an error; variables already set win.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ServeEngine runs the example engine HTTP service on port until SIGINT or
// SIGTERM.
func ServeEngine(cfg *config.Config, port int, w io.Writer) error {
	sc := NewSignalContext(context.Background())
	defer sc.Cancel()

	logger := createLogger(cfg.Debug)
	handler, err := kosukehttp.NewHandler(sc,
		kosukehttp.WithLogger(logger),
		kosukehttp.WithVersion(kosuke.Version),
	)
	if err != nil {
		return fmt.Errorf("error initializing engine service: %w", err)
	}

	addr := fmt.Sprintf(":%d", port)
	printSystemMessage(w, "Starting %s on %s", kosukehttp.ServiceName, addr)
	if err := kosukehttp.Serve(sc, addr, handler, logger); err != nil {
		return err
	}
	if sig := sc.Signal(); sig != nil {
		printSystemMessage(w, "Signal %v: %s stopped gracefully", sig, kosukehttp.ServiceName)
	}
	return nil
}

// ServeMCP serves the engine tools and the redacted progress resource over
// stdio. Logs go to stderr so they never corrupt the JSON-RPC stream.
func ServeMCP(cfg *config.Config, in io.Reader, out io.Writer) error {
	sc := NewSignalContext(context.Background())
	defer sc.Cancel()

	logger := createLogger(cfg.Debug)
	store, closeStore, err := openStore(sc, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := mcp.NewServer(kosuke.Version, redacted(store, cfg), logger)
	logger.Info("starting MCP server (stdio)", "pid", os.Getpid())
	if err := srv.ServeStdio(sc, in, out); err != nil {
		logger.Error("MCP server execution failed", "err", err)
		return err
	}
	return nil
}

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/engine"
	"github.com/aretw0/kosuke/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ProgressURI is the resource exposing the current (redacted) setup progress.
const ProgressURI = "kosuke://progress"

// CalculateArgs are the arguments of the calculate tool.
type CalculateArgs struct {
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Operation string  `json:"operation"`
}

// CalculateResult is the structured output of the calculate tool.
type CalculateResult struct {
	Operation string  `json:"operation" jsonschema_description:"The operation applied"`
	Result    float64 `json:"result" jsonschema_description:"The arithmetic result"`
}

// ConvertArgs are the arguments of the convert_currency tool.
type ConvertArgs struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from_currency"`
	To     string  `json:"to_currency"`
}

// ConvertResult is the structured output of the convert_currency tool.
type ConvertResult struct {
	Amount          float64 `json:"amount"`
	From            string  `json:"from_currency"`
	To              string  `json:"to_currency"`
	ConvertedAmount float64 `json:"converted_amount" jsonschema_description:"Converted amount rounded to cents"`
}

// Server exposes the example engine and the wizard progress over MCP.
type Server struct {
	progress  ports.ProgressStore
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server. progress is read for the progress
// resource and should already be wrapped in redaction middleware.
func NewServer(version string, progress ports.ProgressStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		progress: progress,
		logger:   logger,
		mcpServer: server.NewMCPServer("kosuke-mcp", version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves JSON-RPC on in/out until ctx is cancelled or in closes.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	err := server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Server) registerTools() {
	ops := make([]string, len(engine.Operations))
	for i, op := range engine.Operations {
		ops[i] = string(op)
	}
	currencies := make([]string, len(engine.Currencies))
	for i, c := range engine.Currencies {
		currencies[i] = string(c)
	}

	calculate := mcp.NewTool("calculate",
		mcp.WithDescription("Apply an arithmetic operation to two numbers."),
		mcp.WithNumber("a", mcp.Required(), mcp.Description("Left operand")),
		mcp.WithNumber("b", mcp.Required(), mcp.Description("Right operand")),
		mcp.WithString("operation", mcp.Required(), mcp.Enum(ops...), mcp.Description("Operation to apply")),
		mcp.WithOutputSchema[CalculateResult](),
	)
	s.mcpServer.AddTool(calculate, mcp.NewStructuredToolHandler(s.handleCalculate))

	convert := mcp.NewTool("convert_currency",
		mcp.WithDescription("Convert an amount between currencies using fixed mock rates."),
		mcp.WithNumber("amount", mcp.Required(), mcp.Description("Non-negative amount")),
		mcp.WithString("from_currency", mcp.Required(), mcp.Enum(currencies...)),
		mcp.WithString("to_currency", mcp.Required(), mcp.Enum(currencies...)),
		mcp.WithOutputSchema[ConvertResult](),
	)
	s.mcpServer.AddTool(convert, mcp.NewStructuredToolHandler(s.handleConvert))
}

func (s *Server) handleCalculate(ctx context.Context, request mcp.CallToolRequest, args CalculateArgs) (CalculateResult, error) {
	op, err := engine.ParseOperation(args.Operation)
	if err != nil {
		return CalculateResult{}, err
	}
	result, err := engine.Calculate(args.A, args.B, op)
	if err != nil {
		s.logger.Debug("calculate rejected", "err", err)
		return CalculateResult{}, err
	}
	return CalculateResult{Operation: string(op), Result: result}, nil
}

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest, args ConvertArgs) (ConvertResult, error) {
	from, err := engine.ParseCurrency(args.From)
	if err != nil {
		return ConvertResult{}, err
	}
	to, err := engine.ParseCurrency(args.To)
	if err != nil {
		return ConvertResult{}, err
	}
	converted, err := engine.Convert(args.Amount, from, to)
	if err != nil {
		s.logger.Debug("convert rejected", "err", err)
		return ConvertResult{}, err
	}
	return ConvertResult{
		Amount:          args.Amount,
		From:            string(from),
		To:              string(to),
		ConvertedAmount: converted,
	}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ProgressURI, "Setup Progress",
		mcp.WithResourceDescription("Current onboarding progress with secrets masked"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := s.progressJSON(ctx)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ProgressURI,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	})
}

// progressJSON renders the stored record, or null when no setup is in progress.
func (s *Server) progressJSON(ctx context.Context) (string, error) {
	p, err := s.progress.Load(ctx)
	if errors.Is(err, domain.ErrProgressNotFound) {
		return "null", nil
	}
	if err != nil {
		return "", fmt.Errorf("load progress: %w", err)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/joho/godotenv"

	"github.com/petasbytes/agent-patterns/agent"
	"github.com/petasbytes/agent-patterns/internal/config"
	"github.com/petasbytes/agent-patterns/internal/fsops"
	"github.com/petasbytes/agent-patterns/internal/metrics"
	"github.com/petasbytes/agent-patterns/internal/provider"
	"github.com/petasbytes/agent-patterns/internal/runner"
	"github.com/petasbytes/agent-patterns/internal/telemetry"
	"github.com/petasbytes/agent-patterns/knowledge"
	"github.com/petasbytes/agent-patterns/tools"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	setupLogger(cfg)

	// Basic env check (SDK also reads API key)
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		fmt.Println("Missing ANTHROPIC_API_KEY; export it before running.")
		os.Exit(1)
	}

	patterns, err := selectPatterns(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Ctrl-C / SIGTERM cancel in-flight requests.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, patterns); err != nil {
		slog.Error("run failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func setupLogger(cfg *config.Config) {
	lvl, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

func run(ctx context.Context, cfg *config.Config, patterns []string) error {
	shutdown := telemetry.InitTracing()
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("tracing shutdown", "error", err)
		}
	}()

	d, usage, err := build(cfg)
	if err != nil {
		return err
	}

	var errs []error
	for _, p := range patterns {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if err := d.run(ctx, os.Stdout, p); err != nil {
			slog.Error("pattern failed", "pattern", p, "error", err)
			errs = append(errs, err)
		}
	}
	logUsage(usage)
	return errors.Join(errs...)
}

// build wires the client, runner and agents from cfg.
func build(cfg *config.Config) (*demo, *metrics.UsageTracker, error) {
	docs := knowledge.Sample()
	if cfg.KnowledgeFile != "" {
		box, err := fsops.Default()
		if err != nil {
			return nil, nil, fmt.Errorf("sandbox: %w", err)
		}
		if docs, err = knowledge.Load(box, cfg.KnowledgeFile); err != nil {
			return nil, nil, err
		}
		slog.Info("knowledge loaded", "file", cfg.KnowledgeFile, "documents", len(docs))
	}

	usage := metrics.NewUsageTracker()
	r := runner.New(provider.NewAnthropicClient(cfg.ProviderSettings()), anthropic.Model(cfg.Model))
	r.TokenBudget = cfg.TokenBudget
	r.Usage = usage

	a := agent.New(r, agent.Settings{
		MaxTokens:         cfg.MaxTokens,
		LongMaxTokens:     cfg.LongMaxTokens,
		ToolMaxIterations: cfg.ToolMaxIterations,
	})

	auto := agent.NewAutonomous(r, cfg.LongMaxTokens, nil)
	if cfg.SandboxWrites {
		box, err := fsops.Default()
		if err != nil {
			return nil, nil, fmt.Errorf("sandbox: %w", err)
		}
		reg := tools.Autonomous(box)
		auto = agent.NewAutonomous(r, cfg.LongMaxTokens, reg)
		auto.Executor = reg
		slog.Info("sandboxed writes enabled", "write_root", box.Roots().Write)
	}

	return &demo{agent: a, autonomous: auto, docs: docs, maxIterations: cfg.AgentMaxIterations}, usage, nil
}

func logUsage(u *metrics.UsageTracker) {
	for _, label := range u.Labels() {
		s := u.ByLabel(label)
		slog.Info("usage", "pattern", label, "requests", s.Requests, "input_tokens", s.InputTokens, "output_tokens", s.OutputTokens)
	}
	t := u.Total()
	slog.Info("usage total", "requests", t.Requests, "input_tokens", t.InputTokens, "output_tokens", t.OutputTokens)
}

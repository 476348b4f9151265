package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/petasbytes/agent-patterns/internal/metrics"
	"github.com/petasbytes/agent-patterns/internal/provider"
	"github.com/petasbytes/agent-patterns/internal/telemetry"
	"github.com/petasbytes/agent-patterns/internal/windowing"
)

// ErrOverBudget is returned without any HTTP call when the newest message
// group alone does not fit TokenBudget.
var ErrOverBudget = errors.New("windowing: newest group exceeds token budget")

// Runner sends requests for one model. It holds no per-call state and may be
// shared.
type Runner struct {
	Client *anthropic.Client
	Model  anthropic.Model
	// TokenBudget enables windowing when > 0.
	TokenBudget int
	// Counter estimates window cost; nil means windowing.HeuristicCounter.
	Counter windowing.TokenCounter
	// Usage, when set, accumulates token counts per request label.
	Usage *metrics.UsageTracker
}

// New returns a Runner for model, or provider.DefaultModel when model is empty.
func New(client *anthropic.Client, model anthropic.Model) *Runner {
	if model == "" {
		model = provider.DefaultModel
	}
	return &Runner{Client: client, Model: model}
}

// Request is one call to the Messages API.
type Request struct {
	// Label names the calling pattern in events, spans and usage.
	Label     string
	MaxTokens int64
	Messages  []anthropic.MessageParam
	Tools     []anthropic.ToolUnionParam
}

func (r *Runner) counter() windowing.TokenCounter {
	if r.Counter != nil {
		return r.Counter
	}
	return windowing.HeuristicCounter{}
}

// prepare builds the API params and emits request_prepared.
func (r *Runner) prepare(ctx context.Context, turnID string, req Request) (anthropic.MessageNewParams, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = provider.DefaultMaxTokens
	}
	msgs := req.Messages

	fields := map[string]any{
		"turn_id":    turnID,
		"label":      req.Label,
		"model":      string(r.Model),
		"max_tokens": maxTokens,
		"messages":   len(msgs),
		"tools":      len(req.Tools),
	}
	if r.TokenBudget > 0 {
		window, st := windowing.Fit(msgs, r.TokenBudget, r.counter())
		fields["budget"] = st.Budget
		fields["total_estimated"] = st.Total
		fields["included_groups"] = st.IncludedGroups
		fields["skipped_groups"] = st.SkippedGroups
		fields["over_budget_newest"] = st.OverBudgetNewest
		telemetry.Emit("request_prepared", fields)
		if st.OverBudgetNewest {
			return anthropic.MessageNewParams{}, fmt.Errorf("%w (budget %d)", ErrOverBudget, st.Budget)
		}
		slog.DebugContext(ctx, "runner: window prepared", "label", req.Label, "budget", st.Budget,
			"est_total", st.Total, "groups_in", st.IncludedGroups, "groups_skip", st.SkippedGroups)
		msgs = window
	} else {
		telemetry.Emit("request_prepared", fields)
	}

	params := anthropic.MessageNewParams{
		Model:     r.Model,
		MaxTokens: maxTokens,
		Messages:  msgs,
	}
	// Calibration runs measure plain-text turns only.
	if len(req.Tools) > 0 && !telemetry.CalibrationModeEnabled() {
		params.Tools = req.Tools
	}
	return params, nil
}

func (r *Runner) startSpan(ctx context.Context, name string, req Request) (context.Context, trace.Span) {
	return telemetry.Tracer().Start(ctx, name, trace.WithAttributes(
		attribute.String("agent.label", req.Label),
		attribute.String("llm.model", string(r.Model)),
		attribute.Int("llm.messages", len(req.Messages)),
		attribute.Int("llm.tools", len(req.Tools)),
	))
}

func (r *Runner) record(ctx context.Context, span trace.Span, turnID, label string, stop anthropic.StopReason, in, out int64, start time.Time) {
	span.SetAttributes(
		attribute.String("llm.stop_reason", string(stop)),
		attribute.Int64("llm.input_tokens", in),
		attribute.Int64("llm.output_tokens", out),
	)
	if r.Usage != nil {
		r.Usage.Record(label, in, out)
	}
	telemetry.Emit("completion", map[string]any{
		"turn_id":       turnID,
		"label":         label,
		"stop_reason":   string(stop),
		"input_tokens":  in,
		"output_tokens": out,
		"duration_ms":   time.Since(start).Milliseconds(),
	})
	slog.DebugContext(ctx, "runner: completion", "label", label, "stop_reason", stop,
		"input_tokens", in, "output_tokens", out)
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Complete sends req and returns the reply. The turn id in ctx (or a fresh
// one) correlates every event of the call.
func (r *Runner) Complete(ctx context.Context, req Request) (*anthropic.Message, error) {
	ctx, turnID := telemetry.EnsureTurnID(ctx)
	ctx, span := r.startSpan(ctx, "messages.new", req)
	defer span.End()

	params, err := r.prepare(ctx, turnID, req)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	telemetry.PersistPayload(ctx, "request", params)

	start := time.Now()
	msg, err := r.Client.Messages.New(ctx, params)
	if err != nil {
		fail(span, err)
		return nil, fmt.Errorf("%s: messages.new: %w", req.Label, err)
	}
	telemetry.PersistPayload(ctx, "response", msg)
	r.record(ctx, span, turnID, req.Label, msg.StopReason, msg.Usage.InputTokens, msg.Usage.OutputTokens, start)
	return msg, nil
}

// Stream sends req with streaming enabled and calls onText with every text
// fragment as it arrives. An error from onText stops the stream.
func (r *Runner) Stream(ctx context.Context, req Request, onText func(string) error) error {
	ctx, turnID := telemetry.EnsureTurnID(ctx)
	ctx, span := r.startSpan(ctx, "messages.stream", req)
	defer span.End()

	params, err := r.prepare(ctx, turnID, req)
	if err != nil {
		fail(span, err)
		return err
	}
	telemetry.PersistPayload(ctx, "request", params)

	start := time.Now()
	stream := r.Client.Messages.NewStreaming(ctx, params)
	defer stream.Close()

	var (
		in, out int64
		stop    anthropic.StopReason
	)
	for stream.Next() {
		switch ev := stream.Current().AsAny().(type) {
		case anthropic.MessageStartEvent:
			in = ev.Message.Usage.InputTokens
		case anthropic.ContentBlockDeltaEvent:
			if d, ok := ev.Delta.AsAny().(anthropic.TextDelta); ok {
				if err := onText(d.Text); err != nil {
					fail(span, err)
					return err
				}
			}
		case anthropic.MessageDeltaEvent:
			out = ev.Usage.OutputTokens
			stop = ev.Delta.StopReason
		}
	}
	if err := stream.Err(); err != nil {
		fail(span, err)
		return fmt.Errorf("%s: messages.stream: %w", req.Label, err)
	}
	r.record(ctx, span, turnID, req.Label, stop, in, out, start)
	return nil
}

// FirstText returns the first text block of msg.
func FirstText(msg *anthropic.Message) (string, bool) {
	if msg == nil {
		return "", false
	}
	for _, blk := range msg.Content {
		if t, ok := blk.AsAny().(anthropic.TextBlock); ok {
			return t.Text, true
		}
	}
	return "", false
}

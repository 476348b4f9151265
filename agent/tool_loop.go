package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/petasbytes/agent-patterns/internal/runner"
	"github.com/petasbytes/agent-patterns/internal/telemetry"
	"github.com/petasbytes/agent-patterns/memory"
)

// RunTools sends prompt with get_weather and calculator available. While the
// model stops for tool_use, every call is executed and the results go back in
// one user turn. The first text block of the final reply is returned.
//
// The loop makes at most Settings.ToolMaxIterations requests and returns
// ErrIterationLimit when the model still wants tools after the last one.
func (a *Agent) RunTools(ctx context.Context, prompt string) (string, error) {
	ctx, _ = telemetry.EnsureTurnID(ctx)
	telemetry.EmitLocalFeatures(ctx, prompt)

	conv := memory.New()
	conv.AppendUserText(prompt)
	params := a.tools.Params()

	for i := 0; i < a.settings.ToolMaxIterations; i++ {
		msg, err := a.runner.Complete(ctx, runner.Request{
			Label:     PatternTools,
			MaxTokens: a.settings.MaxTokens,
			Messages:  conv.Messages(),
			Tools:     params,
		})
		if err != nil {
			return "", err
		}
		if msg.StopReason != anthropic.StopReasonToolUse || len(runner.ToolUses(msg)) == 0 {
			text, ok := runner.FirstText(msg)
			if !ok {
				return "", ErrNoText
			}
			return text, nil
		}

		results := runner.ToolResults(ctx, msg, a.executor())
		slog.DebugContext(ctx, "agent: tool round", "iteration", i+1, "calls", len(results))
		conv.Append(msg.ToParam())
		conv.AppendToolResults(results)
	}
	return "", fmt.Errorf("%w after %d requests", ErrIterationLimit, a.settings.ToolMaxIterations)
}

package agent

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/petasbytes/agent-patterns/internal/runner"
	"github.com/petasbytes/agent-patterns/internal/telemetry"
)

const (
	planTemplate  = "Break down this task into clear steps:\n\nTask: %s\n\nProvide a numbered list of steps needed."
	executePrompt = "Now execute each step and provide the final solution."
)

func userPrompt(s string) []anthropic.MessageParam {
	return []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(s))}
}

// Reason asks for a numbered plan, then replays the plan and asks for its
// execution with the larger output cap. The plan is passed back verbatim.
func (a *Agent) Reason(ctx context.Context, task string) (string, error) {
	ctx, _ = telemetry.EnsureTurnID(ctx)
	telemetry.EmitLocalFeatures(ctx, task)

	planPrompt := fmt.Sprintf(planTemplate, task)
	msg, err := a.runner.Complete(ctx, runner.Request{
		Label:     PatternReasoning,
		MaxTokens: a.settings.MaxTokens,
		Messages:  userPrompt(planPrompt),
	})
	if err != nil {
		return "", fmt.Errorf("plan: %w", err)
	}
	plan, ok := runner.FirstText(msg)
	if !ok {
		return "", fmt.Errorf("plan: %w", ErrNoText)
	}

	msg, err = a.runner.Complete(ctx, runner.Request{
		Label:     PatternReasoning,
		MaxTokens: a.settings.LongMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(planPrompt)),
			anthropic.NewAssistantMessage(anthropic.NewTextBlock(plan)),
			anthropic.NewUserMessage(anthropic.NewTextBlock(executePrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("execute: %w", err)
	}
	text, ok := runner.FirstText(msg)
	if !ok {
		return "", fmt.Errorf("execute: %w", ErrNoText)
	}
	return text, nil
}

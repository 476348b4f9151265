package agent

import (
	"context"
	"io"

	"github.com/petasbytes/agent-patterns/internal/runner"
	"github.com/petasbytes/agent-patterns/internal/telemetry"
)

// Stream writes each text fragment of the reply to w as it arrives, then a
// newline. Nothing is buffered or returned.
func (a *Agent) Stream(ctx context.Context, w io.Writer, userMessage string) error {
	ctx, _ = telemetry.EnsureTurnID(ctx)
	telemetry.EmitLocalFeatures(ctx, userMessage)

	err := a.runner.Stream(ctx, runner.Request{
		Label:     PatternStreaming,
		MaxTokens: a.settings.MaxTokens,
		Messages:  userPrompt(userMessage),
	}, func(s string) error {
		_, err := io.WriteString(w, s)
		return err
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

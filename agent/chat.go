package agent

import (
	"context"

	"github.com/petasbytes/agent-patterns/internal/runner"
	"github.com/petasbytes/agent-patterns/internal/telemetry"
	"github.com/petasbytes/agent-patterns/memory"
)

// Chat appends userMessage to history, sends the whole history without tools
// and appends the reply's first text block as an assistant turn. A nil
// history starts a new conversation. The history is returned even on error.
func (a *Agent) Chat(ctx context.Context, userMessage string, history *memory.Conversation) (string, *memory.Conversation, error) {
	if history == nil {
		history = memory.New()
	}
	ctx, _ = telemetry.EnsureTurnID(ctx)
	telemetry.EmitLocalFeatures(ctx, userMessage)

	history.AppendUserText(userMessage)
	msg, err := a.runner.Complete(ctx, runner.Request{
		Label:     PatternBasic,
		MaxTokens: a.settings.MaxTokens,
		Messages:  history.Messages(),
	})
	if err != nil {
		return "", history, err
	}
	text, ok := runner.FirstText(msg)
	if !ok {
		return "", history, ErrNoText
	}
	history.AppendAssistantText(text)
	return text, history, nil
}

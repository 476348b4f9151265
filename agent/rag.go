package agent

import (
	"context"
	"fmt"

	"github.com/petasbytes/agent-patterns/internal/runner"
	"github.com/petasbytes/agent-patterns/internal/telemetry"
	"github.com/petasbytes/agent-patterns/knowledge"
)

const ragTemplate = "Use the following context to answer the question.\n            \nContext:\n%s\n\nQuestion: %s\n\nAnswer based on the context provided."

// RAGPrompt builds the context-prefixed prompt for query.
func RAGPrompt(docCtx, query string) string {
	return fmt.Sprintf(ragTemplate, docCtx, query)
}

// AnswerWithContext picks up to three documents sharing a keyword with query,
// prefixes them to the question and returns the reply's first text block.
// With no matching documents the context section is empty.
func (a *Agent) AnswerWithContext(ctx context.Context, query string, docs []string) (string, error) {
	ctx, turnID := telemetry.EnsureTurnID(ctx)
	telemetry.EmitLocalFeatures(ctx, query)

	matched := knowledge.Retrieve(query, docs, knowledge.DefaultLimit)
	docCtx := knowledge.Context(matched)
	telemetry.Emit("retrieval", map[string]any{
		"turn_id":      turnID,
		"documents":    len(docs),
		"matched":      len(matched),
		"context_size": len(docCtx),
	})

	msg, err := a.runner.Complete(ctx, runner.Request{
		Label:     PatternRAG,
		MaxTokens: a.settings.MaxTokens,
		Messages:  userPrompt(RAGPrompt(docCtx, query)),
	})
	if err != nil {
		return "", err
	}
	text, ok := runner.FirstText(msg)
	if !ok {
		return "", ErrNoText
	}
	return text, nil
}

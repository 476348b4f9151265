package runner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/petasbytes/agent-patterns/internal/telemetry"
	"github.com/petasbytes/agent-patterns/tools"
)

// ToolUses returns the tool_use blocks of msg in order.
func ToolUses(msg *anthropic.Message) []anthropic.ToolUseBlock {
	if msg == nil {
		return nil
	}
	var out []anthropic.ToolUseBlock
	for _, blk := range msg.Content {
		if tu, ok := blk.AsAny().(anthropic.ToolUseBlock); ok {
			out = append(out, tu)
		}
	}
	return out
}

// ToolResults runs every tool_use of msg through exec and returns one
// tool_result per tool_use, same order, matched by id. Handler errors become
// is_error results carrying the error text.
func ToolResults(ctx context.Context, msg *anthropic.Message, exec tools.Executor) []anthropic.ContentBlockParamUnion {
	uses := ToolUses(msg)
	out := make([]anthropic.ContentBlockParamUnion, 0, len(uses))
	for _, tu := range uses {
		out = append(out, execTool(ctx, exec, tu))
	}
	return out
}

func execTool(ctx context.Context, exec tools.Executor, tu anthropic.ToolUseBlock) anthropic.ContentBlockParamUnion {
	turnID, _ := telemetry.TurnIDFromContext(ctx)

	// Sizes only: tool payloads never reach the event log.
	emit := func(d time.Duration, outSize int, errStr string) {
		fields := map[string]any{
			"turn_id":     turnID,
			"tool_name":   tu.Name,
			"tool_use_id": tu.ID,
			"duration_ms": d.Milliseconds(),
			"input_size":  len(tu.Input),
			"output_size": outSize,
			"error":       nil,
		}
		if errStr != "" {
			fields["error"] = errStr
		}
		telemetry.Emit("tool_exec", fields)
	}

	start := time.Now()
	resp, err := exec.Execute(ctx, tu.Name, tu.Input)
	if err != nil {
		kind := "tool error"
		if errors.Is(err, tools.ErrUnknownTool) {
			kind = "tool not found"
		}
		emit(time.Since(start), 0, kind)
		slog.DebugContext(ctx, "runner: tool failed", "tool", tu.Name, "id", tu.ID, "error", err)
		return anthropic.NewToolResultBlock(tu.ID, err.Error(), true)
	}
	emit(time.Since(start), len(resp), "")
	return anthropic.NewToolResultBlock(tu.ID, resp, false)
}

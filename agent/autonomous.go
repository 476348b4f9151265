package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/petasbytes/agent-patterns/internal/provider"
	"github.com/petasbytes/agent-patterns/internal/runner"
	"github.com/petasbytes/agent-patterns/internal/telemetry"
	"github.com/petasbytes/agent-patterns/memory"
	"github.com/petasbytes/agent-patterns/tools"
)

// MaxIterationsReached is the result of a task that used every iteration.
const MaxIterationsReached = "Max iterations reached"

const taskTemplate = "Complete this task: %s\n            \nYou can use available tools. Think step by step and use tools as needed."

// Autonomous works a task over several requests with search_web and
// save_to_file available. It keeps the history of its last task and is not
// safe for concurrent ExecuteTask calls.
type Autonomous struct {
	runner    *runner.Runner
	maxTokens int64
	tools     *tools.Registry
	history   *memory.Conversation

	// Executor runs tool calls. Nil means tools.MockExecutor.
	Executor tools.Executor
}

// NewAutonomous returns an autonomous agent advertising reg, or the default
// autonomous tools when reg is nil. maxTokens <= 0 means
// provider.DefaultLongMaxTokens.
func NewAutonomous(r *runner.Runner, maxTokens int64, reg *tools.Registry) *Autonomous {
	if maxTokens <= 0 {
		maxTokens = provider.DefaultLongMaxTokens
	}
	if reg == nil {
		reg = tools.Autonomous(nil)
	}
	return &Autonomous{runner: r, maxTokens: maxTokens, tools: reg, history: memory.New()}
}

func (a *Autonomous) executor() tools.Executor {
	if a.Executor != nil {
		return a.Executor
	}
	return tools.MockExecutor{}
}

// History is the conversation of the last task. The same value is reused,
// and reset, by every ExecuteTask call.
func (a *Autonomous) History() *memory.Conversation { return a.history }

// ExecuteTask resets the history to the task prompt and makes at most
// maxIterations requests. A non-positive maxIterations sends nothing.
//
// end_turn returns the first text block, or "" when there is none. tool_use
// appends the assistant turn and one result per call, then continues. Any
// other stop reason uses up the iteration and leaves the history as it was.
// Running out of iterations returns MaxIterationsReached and a nil error.
func (a *Autonomous) ExecuteTask(ctx context.Context, task string, maxIterations int) (string, error) {
	ctx, _ = telemetry.EnsureTurnID(ctx)
	telemetry.EmitLocalFeatures(ctx, task)

	a.history.Reset(anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf(taskTemplate, task))))
	params := a.tools.Params()

	for i := 0; i < maxIterations; i++ {
		msg, err := a.runner.Complete(ctx, runner.Request{
			Label:     PatternAutonomous,
			MaxTokens: a.maxTokens,
			Messages:  a.history.Messages(),
			Tools:     params,
		})
		if err != nil {
			return "", err
		}

		switch {
		case msg.StopReason == anthropic.StopReasonEndTurn:
			text, _ := runner.FirstText(msg)
			return text, nil
		case msg.StopReason == anthropic.StopReasonToolUse && len(runner.ToolUses(msg)) > 0:
			a.history.Append(msg.ToParam())
			a.history.AppendToolResults(runner.ToolResults(ctx, msg, a.executor()))
		default:
			slog.DebugContext(ctx, "agent: stop reason ignored", "stop_reason", msg.StopReason, "iteration", i+1)
		}
	}
	return MaxIterationsReached, nil
}

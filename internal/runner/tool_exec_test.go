package runner_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/petasbytes/agent-patterns/internal/runner"
	"github.com/petasbytes/agent-patterns/internal/telemetry"
	"github.com/petasbytes/agent-patterns/tools"
)

type execFunc func(ctx context.Context, name string, input json.RawMessage) (string, error)

func (f execFunc) Execute(ctx context.Context, name string, input json.RawMessage) (string, error) {
	return f(ctx, name, input)
}

const twoToolsReply = `{"id":"msg_t","type":"message","role":"assistant","model":"m",
"content":[
 {"type":"text","text":"Let me check."},
 {"type":"tool_use","id":"t1","name":"get_weather","input":{"location":"Paris"}},
 {"type":"tool_use","id":"t2","name":"calculator","input":{"expression":"15 * 23"}}
],"stop_reason":"tool_use","usage":{"input_tokens":20,"output_tokens":9}}`

func resultsJSON(t *testing.T, v any) gjson.Result {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return gjson.ParseBytes(b)
}

func TestToolResults_OnePerToolUseInOrder(t *testing.T) {
	msg := mustMessage(t, twoToolsReply)
	uses := runner.ToolUses(msg)
	require.Len(t, uses, 2)

	results := runner.ToolResults(context.Background(), msg, tools.Assistant())
	require.Len(t, results, 2)

	js := resultsJSON(t, results)
	assert.Equal(t, "t1", js.Get("0.tool_use_id").String())
	assert.Equal(t, "The weather in Paris is sunny, 72°F", js.Get("0.content.0.text").String())
	assert.False(t, js.Get("0.is_error").Bool())
	assert.Equal(t, "t2", js.Get("1.tool_use_id").String())
	assert.Equal(t, "345", js.Get("1.content.0.text").String())
}

func TestToolResults_UnknownToolIsErrorResult(t *testing.T) {
	msg := mustMessage(t, `{"role":"assistant","content":[{"type":"tool_use","id":"nf1","name":"nope","input":{}}],"stop_reason":"tool_use"}`)

	results := runner.ToolResults(context.Background(), msg, tools.Assistant())
	require.Len(t, results, 1)
	js := resultsJSON(t, results)
	assert.Equal(t, "nf1", js.Get("0.tool_use_id").String())
	assert.True(t, js.Get("0.is_error").Bool())
	assert.Equal(t, `unknown tool "nope"`, js.Get("0.content.0.text").String())
}

func TestToolResults_NoToolUse(t *testing.T) {
	msg := mustMessage(t, textReply)
	assert.Empty(t, runner.ToolResults(context.Background(), msg, tools.Assistant()))
	assert.Empty(t, runner.ToolResults(context.Background(), nil, tools.Assistant()))
}

func TestToolExec_Events(t *testing.T) {
	dir := observeInto(t)
	msg := mustMessage(t, `{"role":"assistant","stop_reason":"tool_use","content":[
 {"type":"tool_use","id":"ok","name":"echo","input":{"x":"payload-text"}},
 {"type":"tool_use","id":"bad","name":"boom","input":{"x":1}},
 {"type":"tool_use","id":"nf","name":"missing","input":{}}]}`)

	exec := execFunc(func(_ context.Context, name string, input json.RawMessage) (string, error) {
		switch name {
		case "echo":
			return "done", nil
		case "boom":
			return "", errors.New("boom")
		}
		return "", &tools.UnknownToolError{Name: name}
	})

	ctx := telemetry.WithTurnID(context.Background(), "turn-tools")
	results := runner.ToolResults(ctx, msg, exec)
	js := resultsJSON(t, results)
	assert.Equal(t, "boom", js.Get("1.content.0.text").String())
	assert.True(t, js.Get("1.is_error").Bool())

	evs := events(t, dir, "tool_exec")
	require.Len(t, evs, 3)
	for _, ev := range evs {
		assert.Equal(t, "turn-tools", ev.Get("turn_id").String())
		assert.GreaterOrEqual(t, ev.Get("duration_ms").Int(), int64(0))
		assert.Greater(t, ev.Get("input_size").Int(), int64(0))
		assert.NotContains(t, ev.Raw, "payload-text")
	}

	assert.Equal(t, "echo", evs[0].Get("tool_name").String())
	assert.Equal(t, int64(4), evs[0].Get("output_size").Int())
	assert.Equal(t, gjson.Null, evs[0].Get("error").Type)

	assert.Equal(t, "tool error", evs[1].Get("error").String())
	assert.Equal(t, int64(0), evs[1].Get("output_size").Int())

	assert.Equal(t, "tool not found", evs[2].Get("error").String())
	assert.Equal(t, int64(0), evs[2].Get("output_size").Int())
}

package agent_test

import (
	"context"
	"encoding/json"

	"github.com/petasbytes/agent-patterns/agent"
	"github.com/petasbytes/agent-patterns/internal/apitest"
	"github.com/petasbytes/agent-patterns/internal/runner"
)

func newAgent(s agent.Settings, replies ...apitest.Reply) (*agent.Agent, *apitest.Transport) {
	st := apitest.NewTransport(replies...)
	return agent.New(runner.New(apitest.Client(st), ""), s), st
}

func newAutonomous(replies ...apitest.Reply) (*agent.Autonomous, *apitest.Transport) {
	st := apitest.NewTransport(replies...)
	return agent.NewAutonomous(runner.New(apitest.Client(st), ""), 0, nil), st
}

func toolUseReply(calls ...apitest.ToolCall) apitest.Reply {
	return apitest.JSON(apitest.Message("tool_use", nil, calls...))
}

func textReply(s string) apitest.Reply { return apitest.JSON(apitest.Text(s)) }

type execFunc func(ctx context.Context, name string, input json.RawMessage) (string, error)

func (f execFunc) Execute(ctx context.Context, name string, input json.RawMessage) (string, error) {
	return f(ctx, name, input)
}

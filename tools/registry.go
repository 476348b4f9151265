package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

// ErrUnknownTool is matched by every UnknownToolError.
var ErrUnknownTool = errors.New("unknown tool")

// UnknownToolError reports a tool_use naming a tool that is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string { return fmt.Sprintf("unknown tool %q", e.Name) }

func (e *UnknownToolError) Is(target error) bool { return target == ErrUnknownTool }

// Executor runs a named tool on raw JSON input.
type Executor interface {
	Execute(ctx context.Context, name string, input json.RawMessage) (string, error)
}

// Registry maps tool names to tools, keeping registration order.
type Registry struct {
	byName map[string]Tool
	order  []Tool
}

// NewRegistry registers ts. Duplicate names are an error.
func NewRegistry(ts ...Tool) (*Registry, error) {
	r := &Registry{byName: make(map[string]Tool, len(ts))}
	for _, t := range ts {
		if _, dup := r.byName[t.Name()]; dup {
			return nil, fmt.Errorf("tool %q registered twice", t.Name())
		}
		r.byName[t.Name()] = t
		r.order = append(r.order, t)
	}
	return r, nil
}

// MustRegistry is NewRegistry for fixed tool sets; it panics on duplicates.
func MustRegistry(ts ...Tool) *Registry {
	r, err := NewRegistry(ts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the tool called name or an *UnknownToolError.
func (r *Registry) Lookup(name string) (Tool, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	return t, nil
}

// Names lists tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	for i, t := range r.order {
		out[i] = t.Name()
	}
	return out
}

// Params returns the request-side tool definitions in registration order.
func (r *Registry) Params() []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, len(r.order))
	for i, t := range r.order {
		out[i] = Param(t)
	}
	return out
}

// Execute looks up name and calls it.
func (r *Registry) Execute(ctx context.Context, name string, input json.RawMessage) (string, error) {
	t, err := r.Lookup(name)
	if err != nil {
		return "", err
	}
	return t.Call(ctx, input)
}

// MockExecutor acknowledges every call without running anything.
type MockExecutor struct{}

func (MockExecutor) Execute(_ context.Context, name string, _ json.RawMessage) (string, error) {
	return MockResult(name), nil
}

// MockResult is the acknowledgement MockExecutor returns for name.
func MockResult(name string) string {
	return fmt.Sprintf("Tool %s executed successfully", name)
}

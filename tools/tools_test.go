package tools_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/petasbytes/agent-patterns/internal/fsops"
	"github.com/petasbytes/agent-patterns/internal/safety"
	"github.com/petasbytes/agent-patterns/tools"
)

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func TestAssistant_Params(t *testing.T) {
	reg := tools.Assistant()
	assert.Equal(t, []string{"get_weather", "calculator"}, reg.Names())

	b, err := json.Marshal(reg.Params())
	require.NoError(t, err)
	js := gjson.ParseBytes(b)

	assert.Equal(t, "get_weather", js.Get("0.name").String())
	assert.Equal(t, "Get the current weather for a location", js.Get("0.description").String())
	assert.Equal(t, "object", js.Get("0.input_schema.type").String())
	assert.Equal(t, "string", js.Get("0.input_schema.properties.location.type").String())
	assert.Equal(t, "City name, e.g. San Francisco, CA", js.Get("0.input_schema.properties.location.description").String())
	assert.Equal(t, `["location"]`, js.Get("0.input_schema.required").Raw)

	assert.Equal(t, "calculator", js.Get("1.name").String())
	assert.Equal(t, "Mathematical expression to evaluate", js.Get("1.input_schema.properties.expression.description").String())
	assert.Equal(t, `["expression"]`, js.Get("1.input_schema.required").Raw)
}

func TestAutonomous_Params(t *testing.T) {
	b, err := json.Marshal(tools.Autonomous(nil).Params())
	require.NoError(t, err)
	js := gjson.ParseBytes(b)

	assert.Equal(t, "search_web", js.Get("0.name").String())
	assert.Equal(t, `["query"]`, js.Get("0.input_schema.required").Raw)
	assert.Equal(t, "save_to_file", js.Get("1.name").String())
	assert.ElementsMatch(t, []string{"filename", "content"}, []string{
		js.Get("1.input_schema.required.0").String(),
		js.Get("1.input_schema.required.1").String(),
	})
}

func TestWeather(t *testing.T) {
	out, err := tools.Weather{}.Call(context.Background(), raw(`{"location":"Paris"}`))
	require.NoError(t, err)
	assert.Equal(t, "The weather in Paris is sunny, 72°F", out)

	_, err = tools.Weather{}.Call(context.Background(), raw(`{"city":"Paris"}`))
	assert.ErrorIs(t, err, tools.ErrInvalidInput)

	_, err = tools.Weather{}.Call(context.Background(), raw(`"Paris"`))
	assert.ErrorIs(t, err, tools.ErrInvalidInput)
}

func TestCalculator(t *testing.T) {
	cases := map[string]string{
		"15 * 23":             "345",
		"10 / 4":              "2.5",
		"2 ** 10":             "1024",
		"__import__('os')":    tools.InvalidExpression,
		"open('/etc/passwd')": tools.InvalidExpression,
		"1 / 0":               tools.InvalidExpression,
		"":                    tools.InvalidExpression,
		"2 +":                 tools.InvalidExpression,
	}
	for expr, want := range cases {
		t.Run(expr, func(t *testing.T) {
			in, err := json.Marshal(tools.CalculatorInput{Expression: expr})
			require.NoError(t, err)
			out, err := tools.Calculator{}.Call(context.Background(), in)
			require.NoError(t, err)
			assert.Equal(t, want, out)
		})
	}
}

func TestRegistry_UnknownTool(t *testing.T) {
	reg := tools.Assistant()

	_, err := reg.Lookup("rm_rf")
	require.Error(t, err)
	assert.ErrorIs(t, err, tools.ErrUnknownTool)
	var ute *tools.UnknownToolError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "rm_rf", ute.Name)

	_, err = reg.Execute(context.Background(), "rm_rf", raw(`{}`))
	assert.ErrorIs(t, err, tools.ErrUnknownTool)
}

func TestRegistry_Execute(t *testing.T) {
	out, err := tools.Assistant().Execute(context.Background(), "calculator", raw(`{"expression":"6*7"}`))
	require.NoError(t, err)
	assert.Equal(t, "42", out)
}

func TestRegistry_DuplicateNames(t *testing.T) {
	_, err := tools.NewRegistry(tools.Weather{}, tools.Weather{})
	require.Error(t, err)
	assert.Panics(t, func() { tools.MustRegistry(tools.Calculator{}, tools.Calculator{}) })
}

func TestMockExecutor(t *testing.T) {
	out, err := tools.MockExecutor{}.Execute(context.Background(), "search_web", raw(`{"query":"ai"}`))
	require.NoError(t, err)
	assert.Equal(t, "Tool search_web executed successfully", out)
}

func TestSearchWeb(t *testing.T) {
	out, err := tools.SearchWeb{}.Call(context.Background(), raw(`{"query":"recent AI developments"}`))
	require.NoError(t, err)
	assert.Equal(t, "Tool search_web executed successfully", out)
}

func TestSaveToFile_MockedWithoutSandbox(t *testing.T) {
	out, err := tools.SaveToFile{}.Call(context.Background(), raw(`{"filename":"a.md","content":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, "Tool save_to_file executed successfully", out)
}

func TestSaveToFile_Sandboxed(t *testing.T) {
	dir := t.TempDir()
	box, err := fsops.New(dir, "")
	require.NoError(t, err)
	reg := tools.Autonomous(box)

	out, err := reg.Execute(context.Background(), "save_to_file", raw(`{"filename":"notes/summary.md","content":"hello"}`))
	require.NoError(t, err)
	assert.Equal(t, "Saved 5 bytes to notes/summary.md", out)
	b, err := os.ReadFile(filepath.Join(box.Roots().Write, "notes", "summary.md"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	_, err = reg.Execute(context.Background(), "save_to_file", raw(`{"filename":"go.mod","content":"module x"}`))
	var te safety.ToolError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, safety.CodeDeniedWrite, te.Code)

	_, err = reg.Execute(context.Background(), "save_to_file", raw(`{"filename":"x.md"}`))
	assert.ErrorIs(t, err, tools.ErrInvalidInput)
}

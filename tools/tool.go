package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
	"github.com/tidwall/gjson"
)

// Tool is a capability the model can invoke.
type Tool interface {
	Name() string
	Description() string
	InputSchema() anthropic.ToolInputSchemaParam
	// Call runs the tool on the raw JSON input from a tool_use block.
	Call(ctx context.Context, input json.RawMessage) (string, error)
}

// ErrInvalidInput marks tool input that is malformed or missing required fields.
var ErrInvalidInput = errors.New("invalid tool input")

// GenerateSchema derives an input schema from the exported fields of T.
// Fields without omitempty are required; jsonschema_description tags become
// property descriptions.
func GenerateSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
		Required:   schema.Required,
	}
}

// Param converts t to the request form sent in MessageNewParams.Tools.
func Param(t Tool) anthropic.ToolUnionParam {
	p := anthropic.ToolUnionParamOfTool(t.InputSchema(), t.Name())
	if d := t.Description(); d != "" {
		p.OfTool.Description = anthropic.String(d)
	}
	return p
}

// decodeInput checks that input is a JSON object carrying every required
// field of the schema, then unmarshals it into T.
func decodeInput[T any](schema anthropic.ToolInputSchemaParam, input json.RawMessage) (T, error) {
	var v T
	if !gjson.ValidBytes(input) || !gjson.ParseBytes(input).IsObject() {
		return v, fmt.Errorf("%w: expected a JSON object", ErrInvalidInput)
	}
	for _, field := range schema.Required {
		if !gjson.GetBytes(input, field).Exists() {
			return v, fmt.Errorf("%w: missing %q", ErrInvalidInput, field)
		}
	}
	if err := json.Unmarshal(input, &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return v, nil
}

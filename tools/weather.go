package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

// WeatherInput is the get_weather argument object.
type WeatherInput struct {
	Location string `json:"location" jsonschema_description:"City name, e.g. San Francisco, CA"`
}

var weatherSchema = GenerateSchema[WeatherInput]()

// Weather reports a canned forecast for any location.
type Weather struct{}

func (Weather) Name() string        { return "get_weather" }
func (Weather) Description() string { return "Get the current weather for a location" }

func (Weather) InputSchema() anthropic.ToolInputSchemaParam { return weatherSchema }

func (Weather) Call(_ context.Context, input json.RawMessage) (string, error) {
	in, err := decodeInput[WeatherInput](weatherSchema, input)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("The weather in %s is sunny, 72°F", in.Location), nil
}

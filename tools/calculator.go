package tools

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/petasbytes/agent-patterns/internal/calc"
)

// InvalidExpression is the calculator's reply to anything it cannot evaluate.
const InvalidExpression = "Invalid expression"

// CalculatorInput is the calculator argument object.
type CalculatorInput struct {
	Expression string `json:"expression" jsonschema_description:"Mathematical expression to evaluate"`
}

var calculatorSchema = GenerateSchema[CalculatorInput]()

// Calculator evaluates arithmetic with the calc interpreter. It never runs code.
type Calculator struct{}

func (Calculator) Name() string        { return "calculator" }
func (Calculator) Description() string { return "Perform mathematical calculations" }

func (Calculator) InputSchema() anthropic.ToolInputSchemaParam { return calculatorSchema }

func (Calculator) Call(_ context.Context, input json.RawMessage) (string, error) {
	in, err := decodeInput[CalculatorInput](calculatorSchema, input)
	if err != nil {
		return "", err
	}
	out, err := calc.Evaluate(in.Expression)
	if err != nil {
		slog.Debug("calculator: rejected expression", "error", err)
		return InvalidExpression, nil
	}
	return out, nil
}

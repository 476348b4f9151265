package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/petasbytes/agent-patterns/internal/fsops"
)

// SearchWebInput is the search_web argument object.
type SearchWebInput struct {
	Query string `json:"query"`
}

var searchWebSchema = GenerateSchema[SearchWebInput]()

// SearchWeb has no search backend; it acknowledges the query.
type SearchWeb struct{}

func (SearchWeb) Name() string        { return "search_web" }
func (SearchWeb) Description() string { return "Search for information on the web" }

func (SearchWeb) InputSchema() anthropic.ToolInputSchemaParam { return searchWebSchema }

func (s SearchWeb) Call(_ context.Context, input json.RawMessage) (string, error) {
	if _, err := decodeInput[SearchWebInput](searchWebSchema, input); err != nil {
		return "", err
	}
	return MockResult(s.Name()), nil
}

// SaveToFileInput is the save_to_file argument object. Filename is relative
// to the sandbox write root.
type SaveToFileInput struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

var saveToFileSchema = GenerateSchema[SaveToFileInput]()

// SaveToFile acknowledges saves without touching disk unless Sandbox is set,
// in which case content is written under the sandbox write root.
type SaveToFile struct {
	Sandbox *fsops.Sandbox
}

func (SaveToFile) Name() string        { return "save_to_file" }
func (SaveToFile) Description() string { return "Save content to a file" }

func (SaveToFile) InputSchema() anthropic.ToolInputSchemaParam { return saveToFileSchema }

func (s SaveToFile) Call(_ context.Context, input json.RawMessage) (string, error) {
	in, err := decodeInput[SaveToFileInput](saveToFileSchema, input)
	if err != nil {
		return "", err
	}
	if s.Sandbox == nil {
		return MockResult(s.Name()), nil
	}
	if err := s.Sandbox.WriteFile(in.Filename, in.Content); err != nil {
		return "", err
	}
	return fmt.Sprintf("Saved %d bytes to %s", len(in.Content), in.Filename), nil
}

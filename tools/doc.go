// Package tools holds the tools a model may call and the registry that
// dispatches tool_use blocks to them by name.
//
// Each tool is its own type implementing Tool. Input schemas are derived
// from Go structs with GenerateSchema. Tool failures are returned as errors
// so callers can report them to the model as is_error tool results.
package tools

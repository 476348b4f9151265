// Package runner coordinates message exchange with the Anthropic Messages API
// and dispatches tool calls.
//
// Every request goes through Runner: the history is optionally cut to a
// pair-safe token window, sent, and recorded (events, payloads, spans, usage).
//
// Invariant:
//   - tool_use and the corresponding tool_result are kept adjacent: one user
//     turn carries a result for every tool_use of the preceding assistant turn,
//     matched by id and in the same order.
//
// Flow:
//
//	user(text) -> assistant(tool_use) -> user(tool_result) -> assistant(text)
package runner

// Package agent implements six ways of driving the Messages API: a
// conversational turn, a tool-dispatch loop, a context-prefixed query,
// two-phase planning, streaming output and a bounded autonomous loop.
//
// All requests go through a shared runner.Runner. Calls are synchronous and
// honour ctx cancellation.
package agent

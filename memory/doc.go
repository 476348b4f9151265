// Package memory holds conversation history in memory for the lifetime of a
// call or an agent value.
//
// History is append-only: turns are never pruned, truncated or persisted, and
// role alternation is not enforced. Windowing, when enabled, operates on a
// copy at send time and leaves the stored history untouched.
package memory

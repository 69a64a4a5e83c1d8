// Package scenario builds small, deterministic worlds and agent
// populations for tests and examples/S1-S6. One orchestrator (Build)
// applies a sequence of Option closures against a mutable config.
package scenario

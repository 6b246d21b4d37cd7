// Package cli implements the navsim command-line interface.
//
// navsim replays a scripted navigation session through the transition
// engine on a virtual clock and logs every lifecycle event: transition
// starts and ends, flip halves, swipe admissions and committed go-backs.
//
// # Commands
//
//   - run: replay a scenario file
//   - validate: check a scenario file without running it
//   - version: print build information
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which adds
// per-frame position values. Loggers are passed through context.Context.
package cli

// Package cmd provides a transport-agnostic command core: a command is something
// with a name, a description and Run(ctx, invocation) producing a reply. How it is
// registered and dispatched (Discord slash, CLI) is defined by adapters around it.
package cmd

import "context"

// Invocation carries the minimal input any command runner can pass: arguments
// and an opaque payload. Adapters set Data to their context (e.g. the Discord
// interaction, or nothing at all for the CLI).
type Invocation struct {
	Args []string
	Data any
}

// Command is the universal contract: identity plus execution. Run returns the
// text to send back to whoever invoked the command.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) (string, error)
}

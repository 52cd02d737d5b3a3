package core

import (
	"github.com/keshon/swolebro/internal/command"
	"github.com/keshon/swolebro/internal/middleware"
)

// HelpCommand is a placeholder until per-command help text exists.
type HelpCommand struct{}

func (c *HelpCommand) Name() string          { return "help" }
func (c *HelpCommand) Description() string   { return "Displays command help." }
func (c *HelpCommand) Group() string         { return "core" }
func (c *HelpCommand) Scope() command.Scope  { return command.ScopeGlobal }
func (c *HelpCommand) Run(_ []string) string { return "Not yet implemented!" }

func init() {
	command.RegisterCommand(
		&HelpCommand{},
		middleware.WithCommandLogger(),
	)
}

package jcfdiscord

import (
	"github.com/keshon/swolebro/internal/command"
	"github.com/keshon/swolebro/internal/middleware"
)

type NootCommand struct{}

func (c *NootCommand) Name() string          { return "noot" }
func (c *NootCommand) Description() string   { return "noot noot" }
func (c *NootCommand) Group() string         { return group }
func (c *NootCommand) Scope() command.Scope  { return command.ScopeGuild }
func (c *NootCommand) Run(_ []string) string { return "noot noot" }

func init() {
	command.RegisterCommand(
		&NootCommand{},
		middleware.WithCommandLogger(),
	)
}

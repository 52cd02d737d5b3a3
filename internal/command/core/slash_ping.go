package core

import (
	"github.com/keshon/swolebro/internal/command"
	"github.com/keshon/swolebro/internal/middleware"
)

type PingCommand struct{}

func (c *PingCommand) Name() string          { return "ping" }
func (c *PingCommand) Description() string   { return "Checks for a bot response." }
func (c *PingCommand) Group() string         { return "core" }
func (c *PingCommand) Scope() command.Scope  { return command.ScopeGlobal }
func (c *PingCommand) Run(_ []string) string { return "Pong!" }

func init() {
	command.RegisterCommand(
		&PingCommand{},
		middleware.WithCommandLogger(),
	)
}

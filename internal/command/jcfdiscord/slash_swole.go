package jcfdiscord

import (
	"github.com/keshon/swolebro/internal/command"
	"github.com/keshon/swolebro/internal/middleware"
)

type SwoleCommand struct{}

func (c *SwoleCommand) Name() string         { return "swole" }
func (c *SwoleCommand) Description() string  { return "are u swole" }
func (c *SwoleCommand) Group() string        { return group }
func (c *SwoleCommand) Scope() command.Scope { return command.ScopeGuild }

// TODO: greet the invoking user when they are swole, and praise channels named after fitness.
func (c *SwoleCommand) Run(_ []string) string {
	return "Too bad you're not as swole as swolebro"
}

func init() {
	command.RegisterCommand(
		&SwoleCommand{},
		middleware.WithCommandLogger(),
	)
}

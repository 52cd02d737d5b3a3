package middleware

import (
	"context"
	"log"

	"github.com/keshon/swolebro/internal/command"
	"github.com/keshon/swolebro/pkg/cmd"
)

// WithCommandLogger wraps a command to log its execution
func WithCommandLogger() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) (string, error) {
			reply, err := c.Run(ctx, inv)

			var data any
			if inv != nil {
				data = inv.Data
			}
			switch v := data.(type) {
			case *command.InteractionContext:
				guild := v.GuildID
				if guild == "" {
					guild = "DM"
				}
				log.Printf("[INFO] [%s] /%s invoked by %s (%s)", guild, c.Name(), v.Username, v.UserID)
			default:
				log.Printf("[INFO] /%s invoked locally", c.Name())
			}
			if err != nil {
				log.Printf("[WARN] /%s failed: %v", c.Name(), err)
			}
			return reply, err
		})
	}
}

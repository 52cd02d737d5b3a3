package discord

import (
	"context"
	"fmt"

	"github.com/keshon/swolebro/internal/command"
)

// Register declares every command of the given scope to Discord. guildID is
// empty for the global scope. The declaration overwrites whatever was there
// before, so repeating it with the same table is harmless.
func (r *Router) Register(ctx context.Context, gw Gateway, guildID string, scope command.Scope) error {
	label := guildID
	if label == "" {
		label = "global"
	}

	if !r.RegisterCommands {
		r.Log.Printf("[INFO] [%s] Registering slash commands skipped", label)
		return nil
	}

	defs := command.Definitions(r.registry(), scope)

	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("failed to wait for registration slot: %w", err)
		}
	}

	err := gw.OverwriteCommands(guildID, defs)
	if r.Limiter != nil {
		r.Limiter.Observe(err)
	}
	if err != nil {
		return fmt.Errorf("failed to register %s commands: %w", scope, err)
	}

	r.Log.Printf("[DONE] [%s] Registered %d %s command(s)", label, len(defs), scope)
	return nil
}

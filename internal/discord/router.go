package discord

import (
	"context"
	"log"
	"os"
	"slices"

	"github.com/keshon/swolebro/internal/command"
	"github.com/keshon/swolebro/pkg/cmd"
	"github.com/keshon/swolebro/pkg/throttle"

	"golang.org/x/time/rate"
)

// NoChannelName is printed when a message's channel cannot be resolved.
const NoChannelName = "(no channel name)"

// Router demultiplexes gateway events to local actions. It holds no mutable
// state of its own, so Handle may be called from many goroutines at once.
type Router struct {
	// Registry is the command table; defaults to cmd.DefaultRegistry.
	Registry *cmd.Registry
	// Log receives diagnostics and the message transcript.
	Log *log.Logger
	// Activity is the "Watching ..." presence set on Ready.
	Activity string
	// RegisterCommands disables all command declarations when false.
	RegisterCommands bool
	// GuildBlacklist lists guilds that never get guild-scoped commands.
	GuildBlacklist []string
	// Limiter paces registration calls; nil means unpaced.
	Limiter *throttle.Limiter
}

// NewRouter returns a Router over the default registry, logging to stdout and
// pacing registration at perSecond calls per second.
func NewRouter(activity string, perSecond float64) *Router {
	limit := rate.Limit(perSecond)
	return &Router{
		Registry:         cmd.DefaultRegistry,
		Log:              log.New(os.Stdout, "", log.LstdFlags),
		Activity:         activity,
		RegisterCommands: true,
		Limiter:          throttle.New(limit, 1, limit*4, 1, 0.5),
	}
}

// Handle processes one event. gw is the shared connection handle and is only
// used for outbound calls.
func (r *Router) Handle(ctx context.Context, gw Gateway, ev Event) {
	switch e := ev.(type) {
	case Ready:
		r.onReady(ctx, gw, e)
	case GuildDiscovered:
		r.onGuildDiscovered(ctx, gw, e)
	case InteractionReceived:
		r.onInteraction(ctx, gw, e)
	case MessageReceived:
		r.onMessage(gw, e)
	default:
		r.Log.Printf("[WARN] Unhandled event %T", ev)
	}
}

func (r *Router) onReady(ctx context.Context, gw Gateway, e Ready) {
	r.Log.Printf("[INFO] Discovered Username: %s", e.Username)
	r.Log.Printf("[INFO] Discovered Shard ID: %d", e.ShardID)

	if err := r.Register(ctx, gw, "", command.ScopeGlobal); err != nil {
		r.Log.Printf("[ERR] Error registering global commands: %v", err)
	}

	if err := gw.SetWatching(r.Activity); err != nil {
		r.Log.Printf("[WARN] Failed to set presence: %v", err)
	}
}

func (r *Router) onGuildDiscovered(ctx context.Context, gw Gateway, e GuildDiscovered) {
	r.Log.Printf("[INFO] Discovered Guild: %s (%s)", e.Name, e.GuildID)

	if slices.Contains(r.GuildBlacklist, e.GuildID) {
		r.Log.Printf("[INFO] Skipping commands for blacklisted guild: %s (%s)", e.Name, e.GuildID)
		return
	}

	if err := r.Register(ctx, gw, e.GuildID, command.ScopeGuild); err != nil {
		r.Log.Printf("[ERR] Error registering guild commands for %s: %v", e.Name, err)
	}
}

func (r *Router) onInteraction(ctx context.Context, gw Gateway, e InteractionReceived) {
	inv := &cmd.Invocation{}
	if e.Context != nil {
		inv.Args = command.ArgsFromOptions(e.Context.Options)
		inv.Data = e.Context
	}
	r.Log.Printf("[INFO] Received command interaction: /%s %v", e.Name, inv.Args)

	content := command.Dispatch(ctx, r.registry(), e.Name, inv)
	if err := gw.Reply(e.Interaction, content); err != nil {
		r.Log.Printf("[ERR] Cannot respond to slash command /%s: %v", e.Name, err)
	}
}

func (r *Router) onMessage(gw Gateway, e MessageReceived) {
	name, err := gw.ChannelName(e.ChannelID)
	if err != nil || name == "" {
		name = NoChannelName
	}
	r.Log.Printf("#%s [%s#%s]: %s", name, e.AuthorName, e.Discriminator, e.Content)
}

func (r *Router) registry() *cmd.Registry {
	if r.Registry == nil {
		return cmd.DefaultRegistry
	}
	return r.Registry
}

package command

import (
	"context"
	"fmt"
	"log"

	"github.com/keshon/swolebro/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// NotImplemented is the reply for any command name missing from the registry.
const NotImplemented = "This interaction is not implemented."

// Scope says where a command is declared to Discord.
type Scope int

const (
	// ScopeGlobal commands are declared once for every guild.
	ScopeGlobal Scope = iota
	// ScopeGuild commands are declared per guild as the bot discovers it.
	ScopeGuild
)

func (s Scope) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeGuild:
		return "guild"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// InteractionContext is what the Discord adapter puts in cmd.Invocation.Data.
type InteractionContext struct {
	GuildID   string
	ChannelID string
	UserID    string
	Username  string
	Options   []*discordgo.ApplicationCommandInteractionDataOption
}

// SlashProvider lets a command supply its own application-command definition.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// DiscordMeta is exposed by the Discord adapter so the router and middleware can
// read Group/Scope without depending on the concrete command type.
type DiscordMeta interface {
	Group() string
	Scope() Scope
}

// DiscordCommand is what individual commands implement. Run is a pure function of
// the flattened option list.
type DiscordCommand interface {
	Name() string
	Description() string
	Group() string
	Scope() Scope
	Run(args []string) string
}

// DiscordAdapter adapts a DiscordCommand to cmd.Command so it can live in the
// universal registry. It also implements SlashProvider and DiscordMeta.
type DiscordAdapter struct {
	Cmd DiscordCommand
}

func (a *DiscordAdapter) Name() string        { return a.Cmd.Name() }
func (a *DiscordAdapter) Description() string { return a.Cmd.Description() }
func (a *DiscordAdapter) Group() string       { return a.Cmd.Group() }
func (a *DiscordAdapter) Scope() Scope        { return a.Cmd.Scope() }

func (a *DiscordAdapter) Run(ctx context.Context, inv *cmd.Invocation) (string, error) {
	var args []string
	if inv != nil {
		args = inv.Args
	}
	return a.Cmd.Run(args), nil
}

func (a *DiscordAdapter) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := a.Cmd.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return &discordgo.ApplicationCommand{
		Name:        a.Cmd.Name(),
		Description: a.Cmd.Description(),
	}
}

// RegisterCommand registers a Discord command with the default registry and applies middlewares.
func RegisterCommand(discordCmd DiscordCommand, mws ...cmd.Middleware) {
	RegisterCommandIn(cmd.DefaultRegistry, discordCmd, mws...)
}

// RegisterCommandIn is RegisterCommand for an explicit registry.
func RegisterCommandIn(r *cmd.Registry, discordCmd DiscordCommand, mws ...cmd.Middleware) {
	r.Register(cmd.Apply(&DiscordAdapter{Cmd: discordCmd}, mws...))
}

// Definitions returns the application-command definitions of every command in r
// declared for the given scope, sorted by name.
func Definitions(r *cmd.Registry, scope Scope) []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range r.GetAll() {
		root := cmd.Root(c)
		meta, ok := root.(DiscordMeta)
		if !ok || meta.Scope() != scope {
			continue
		}
		if def := commandDefinition(root); def != nil {
			defs = append(defs, def)
		}
	}
	return defs
}

func commandDefinition(c cmd.Command) *discordgo.ApplicationCommand {
	slash, ok := c.(SlashProvider)
	if !ok {
		return nil
	}
	def := slash.SlashDefinition()
	if def == nil {
		return nil
	}
	if def.Type == 0 {
		def.Type = discordgo.ChatApplicationCommand
	}
	return def
}

// Dispatch runs the named command and returns its reply. Unknown names and
// failing commands both yield NotImplemented.
func Dispatch(ctx context.Context, r *cmd.Registry, name string, inv *cmd.Invocation) string {
	c := r.Get(name)
	if c == nil {
		log.Printf("[WARN] Unknown command: %s", name)
		return NotImplemented
	}
	if inv == nil {
		inv = &cmd.Invocation{}
	}
	reply, err := c.Run(ctx, inv)
	if err != nil {
		log.Printf("[ERR] Error running command /%s: %v", name, err)
		return NotImplemented
	}
	return reply
}

// ArgsFromOptions flattens interaction options into name=value arguments.
// Subcommands contribute their name followed by their own options.
func ArgsFromOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) []string {
	var args []string
	for _, o := range opts {
		if o == nil {
			continue
		}
		switch o.Type {
		case discordgo.ApplicationCommandOptionSubCommand, discordgo.ApplicationCommandOptionSubCommandGroup:
			args = append(args, o.Name)
			args = append(args, ArgsFromOptions(o.Options)...)
		default:
			args = append(args, fmt.Sprintf("%s=%v", o.Name, o.Value))
		}
	}
	return args
}

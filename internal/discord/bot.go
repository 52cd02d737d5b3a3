package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/keshon/swolebro/internal/config"

	"github.com/bwmarrin/discordgo"
)

// Bot is a Discord bot
type Bot struct {
	dg     *discordgo.Session
	gw     Gateway
	router *Router
}

// New builds the session and installs the event handlers. It does not
// connect. Without a token no session is created at all.
func New(cfg *config.Config) (*Bot, error) {
	if cfg == nil || cfg.DiscordToken == "" {
		return nil, config.ErrMissingToken
	}

	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	router := NewRouter(cfg.DiscordActivity, cfg.RegistrationRate)
	router.RegisterCommands = cfg.InitSlashCommands
	router.GuildBlacklist = cfg.DiscordGuildBlacklist

	b := &Bot{
		dg:     dg,
		gw:     NewSessionGateway(dg),
		router: router,
	}
	b.configureIntents()
	return b, nil
}

// Run opens a single shard and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.router.Handle(ctx, b.gw, readyEvent(s, r))
	})
	b.dg.AddHandler(func(_ *discordgo.Session, g *discordgo.GuildCreate) {
		b.router.Handle(ctx, b.gw, guildEvent(g))
	})
	b.dg.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		if ev, ok := interactionEvent(i); ok {
			b.router.Handle(ctx, b.gw, ev)
		}
	})
	b.dg.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		b.router.Handle(ctx, b.gw, messageEvent(m))
	})

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	return nil
}

// configureIntents declares the event categories the gateway should deliver.
func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsAllWithoutPrivileged | discordgo.IntentMessageContent
}

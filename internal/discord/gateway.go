package discord

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// Gateway is everything the router needs from the Discord connection. The
// router only reads through it and issues outbound calls; it never mutates it.
type Gateway interface {
	// OverwriteCommands replaces the command set declared for guildID.
	// An empty guildID addresses the global scope.
	OverwriteCommands(guildID string, defs []*discordgo.ApplicationCommand) error
	// SetWatching sets a "Watching <name>" presence.
	SetWatching(name string) error
	// Reply answers an interaction with a public text message.
	Reply(i *discordgo.Interaction, content string) error
	// ChannelName resolves a channel ID to its display name.
	ChannelName(channelID string) (string, error)
}

// sessionGateway implements Gateway on top of a live discordgo session.
type sessionGateway struct {
	dg *discordgo.Session
}

// NewSessionGateway adapts s to the Gateway interface.
func NewSessionGateway(s *discordgo.Session) Gateway {
	return &sessionGateway{dg: s}
}

func (g *sessionGateway) OverwriteCommands(guildID string, defs []*discordgo.ApplicationCommand) error {
	appID, err := g.appID()
	if err != nil {
		return err
	}
	if _, err := g.dg.ApplicationCommandBulkOverwrite(appID, guildID, defs); err != nil {
		return restError(err)
	}
	return nil
}

func (g *sessionGateway) SetWatching(name string) error {
	return g.dg.UpdateWatchStatus(0, name)
}

func (g *sessionGateway) Reply(i *discordgo.Interaction, content string) error {
	return Respond(g.dg, i, content)
}

// ChannelName looks in the state cache first and falls back to the REST API.
func (g *sessionGateway) ChannelName(channelID string) (string, error) {
	if g.dg.State != nil {
		if ch, err := g.dg.State.Channel(channelID); err == nil {
			return ch.Name, nil
		}
	}
	ch, err := g.dg.Channel(channelID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch channel %s: %w", channelID, err)
	}
	return ch.Name, nil
}

// appID returns the bot's application ID, fetching from Discord if not cached in State.
func (g *sessionGateway) appID() (string, error) {
	if g.dg.State != nil && g.dg.State.User != nil && g.dg.State.User.ID != "" {
		return g.dg.State.User.ID, nil
	}
	u, err := g.dg.User("@me")
	if err != nil {
		return "", fmt.Errorf("failed to fetch bot user: %w", err)
	}
	return u.ID, nil
}

// statusError exposes the HTTP status of a discordgo REST failure to pkg/throttle.
type statusError struct {
	err  error
	code int
}

func (e *statusError) Error() string   { return e.err.Error() }
func (e *statusError) Unwrap() error   { return e.err }
func (e *statusError) StatusCode() int { return e.code }

func restError(err error) error {
	var rerr *discordgo.RESTError
	if errors.As(err, &rerr) && rerr.Response != nil {
		return &statusError{err: err, code: rerr.Response.StatusCode}
	}
	var rlerr *discordgo.RateLimitError
	if errors.As(err, &rlerr) {
		return &statusError{err: err, code: http.StatusTooManyRequests}
	}
	return err
}

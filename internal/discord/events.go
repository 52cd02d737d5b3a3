package discord

import (
	"github.com/keshon/swolebro/internal/command"

	"github.com/bwmarrin/discordgo"
)

// Event is one inbound gateway event the router understands. The set of
// variants is closed: Ready, GuildDiscovered, InteractionReceived and
// MessageReceived.
type Event interface {
	event()
}

// Ready fires once the gateway connection is established.
type Ready struct {
	Username string
	ShardID  int
}

// GuildDiscovered fires for every guild the bot is a member of, at connect
// time or on join.
type GuildDiscovered struct {
	GuildID string
	Name    string
}

// InteractionReceived fires when a user invokes a registered command.
type InteractionReceived struct {
	Interaction *discordgo.Interaction
	Name        string
	Context     *command.InteractionContext
}

// MessageReceived fires on every chat message visible to the bot.
type MessageReceived struct {
	AuthorName    string
	Discriminator string
	ChannelID     string
	Content       string
}

func (Ready) event()               {}
func (GuildDiscovered) event()     {}
func (InteractionReceived) event() {}
func (MessageReceived) event()     {}

// --- discordgo conversions ---

func readyEvent(s *discordgo.Session, r *discordgo.Ready) Ready {
	ev := Ready{ShardID: s.ShardID}
	if r.User != nil {
		ev.Username = r.User.Username
	}
	return ev
}

func guildEvent(g *discordgo.GuildCreate) GuildDiscovered {
	return GuildDiscovered{GuildID: g.ID, Name: g.Name}
}

// interactionEvent converts application-command interactions. Other interaction
// kinds (components, autocomplete, modals) are reported as not ok.
func interactionEvent(i *discordgo.InteractionCreate) (InteractionReceived, bool) {
	if i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return InteractionReceived{}, false
	}
	data := i.ApplicationCommandData()
	ctx := &command.InteractionContext{
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		Options:   data.Options,
	}
	if u := resolveUser(i.Interaction); u != nil {
		ctx.UserID = u.ID
		ctx.Username = u.Username
	}
	return InteractionReceived{
		Interaction: i.Interaction,
		Name:        data.Name,
		Context:     ctx,
	}, true
}

func messageEvent(m *discordgo.MessageCreate) MessageReceived {
	ev := MessageReceived{ChannelID: m.ChannelID, Content: m.Content}
	if m.Author != nil {
		ev.AuthorName = m.Author.Username
		ev.Discriminator = m.Author.Discriminator
	}
	return ev
}

// resolveUser returns the invoking user: the member's user in guilds, the
// plain user in DMs.
func resolveUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Respond sends a public message response to an interaction.
func Respond(s *discordgo.Session, i *discordgo.Interaction, content string) error {
	return s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

package discord

import (
	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bwmarrin/discordgo"
)

const queryOption = "query"

func applicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        string(domain.CommandAsk),
			Description: "Ask the model a single question",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        queryOption,
					Description: "Your question",
					Required:    true,
				},
			},
		},
		{
			Name:        string(domain.CommandStartSession),
			Description: "Open a thread for a longer conversation with the model",
		},
		{
			Name:        string(domain.CommandStopSession),
			Description: "Stop answering in this thread",
		},
	}
}

package speedrun

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// ToDiscordEmbed renders a script's craft list as a Discord embed,
// suitable for pasting into a webhook payload. No live bot session is
// involved — this only builds the message structure the original's
// CLI verb left unimplemented.
func ToDiscordEmbed(title string, crafts []Craft) *discordgo.MessageEmbed {
	var body strings.Builder
	for _, c := range crafts {
		fmt.Fprintf(&body, "%s + %s = %s\n", c.A, c.B, c.Result)
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: body.String(),
		Color:       0x5865F2,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d crafts", len(crafts)),
		},
	}
}

// MarshalEmbed renders embed as the JSON body a webhook POST expects
// (`{"embeds": [...]}`), ready to paste into a request tool or curl
// invocation.
func MarshalEmbed(embed *discordgo.MessageEmbed) ([]byte, error) {
	payload := struct {
		Embeds []*discordgo.MessageEmbed `json:"embeds"`
	}{Embeds: []*discordgo.MessageEmbed{embed}}
	return json.MarshalIndent(payload, "", "  ")
}

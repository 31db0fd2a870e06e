package speedrun

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToDiscordEmbedIncludesEveryCraft(t *testing.T) {
	crafts, errs := Parse("Water  +  Fire  =  Steam\nSteam  +  Earth  =  Geyser\n")
	require.Empty(t, errs)

	embed := ToDiscordEmbed("Speedrun", crafts)
	require.Equal(t, "Speedrun", embed.Title)
	require.Contains(t, embed.Description, "Water + Fire = Steam")
	require.Contains(t, embed.Description, "Steam + Earth = Geyser")
	require.Equal(t, "2 crafts", embed.Footer.Text)
}

func TestMarshalEmbedProducesValidJSON(t *testing.T) {
	embed := ToDiscordEmbed("Speedrun", nil)
	data, err := MarshalEmbed(embed)
	require.NoError(t, err)
	require.Contains(t, string(data), "\"embeds\"")
}

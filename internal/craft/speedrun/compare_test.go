package speedrun

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompareDetectsAddedRemovedAndChangedCrafts(t *testing.T) {
	original, errs := Parse("Water  +  Fire  =  Steam\nEarth  +  Water  =  Mud\n")
	require.Empty(t, errs)
	updated, errs := Parse("Wind  +  Water  =  Steam\nWind  +  Water  =  Mist\n")
	require.Empty(t, errs)

	diff := Compare(original, updated)
	require.ElementsMatch(t, []string{"Mist"}, diff.AddedElements)
	require.ElementsMatch(t, []string{"Mud"}, diff.RemovedElements)
	require.Contains(t, diff.Changed, "Steam")
	require.Equal(t, "Water", diff.Changed["Steam"][0].A)
	require.Equal(t, "Wind", diff.Changed["Steam"][1].A)
}

func TestRenderTableWritesWithoutPanicking(t *testing.T) {
	original, _ := Parse("Water  +  Fire  =  Steam\n")
	updated, _ := Parse("Water  +  Fire  =  Lava\n")
	diff := Compare(original, updated)

	var buf bytes.Buffer
	RenderTable(&buf, diff)
	require.NotEmpty(t, buf.String())
}

package speedrun

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/handler"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/oracle"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/store"
)

var seeds = []string{"Water", "Fire", "Wind", "Earth"}

func TestSimpleCheckFindsNoIssuesInAWellFormedScript(t *testing.T) {
	crafts, errs := Parse("Water  +  Fire  =  Steam\nSteam  +  Earth  =  Geyser\n")
	require.Empty(t, errs)

	result := SimpleCheck(crafts, seeds)
	require.False(t, result.HasDuplicates)
	require.False(t, result.HasMissing)
}

func TestSimpleCheckFlagsDuplicateResult(t *testing.T) {
	crafts, errs := Parse("Water  +  Fire  =  Steam\nWater  +  Wind  =  Steam\n")
	require.Empty(t, errs)

	result := SimpleCheck(crafts, seeds)
	require.True(t, result.HasDuplicates)
}

func TestSimpleCheckFlagsMisplacedIngredient(t *testing.T) {
	crafts, errs := Parse("Steam  +  Earth  =  Geyser\nWater  +  Fire  =  Steam\n")
	require.Empty(t, errs)

	result := SimpleCheck(crafts, seeds)
	require.True(t, result.HasMisplaced)
	require.False(t, result.HasMissing)
}

func TestLoopOrderReordersAMisplacedScript(t *testing.T) {
	crafts, errs := Parse("Steam  +  Earth  =  Geyser\nWater  +  Fire  =  Steam\n")
	require.Empty(t, errs)

	order, ok := LoopOrder(crafts, seeds)
	require.True(t, ok)
	require.Equal(t, "Steam", order[0].Result)
	require.Equal(t, "Geyser", order[1].Result)
}

func TestLoopOrderFailsOnUnproducibleIngredient(t *testing.T) {
	crafts, errs := Parse("Steam  +  Mystery  =  Geyser\n")
	require.Empty(t, errs)

	_, ok := LoopOrder(crafts, seeds)
	require.False(t, ok)
}

func TestStaticCheckAttemptsReorderOnlyForMisplacedOnly(t *testing.T) {
	crafts, errs := Parse("Steam  +  Earth  =  Geyser\nWater  +  Fire  =  Steam\n")
	require.Empty(t, errs)

	result := StaticCheck(crafts, seeds)
	require.True(t, result.TriedReorder)
	require.True(t, result.ReorderedOK)
}

func TestCountUsesTalliesIngredientOccurrences(t *testing.T) {
	crafts, errs := Parse("Water  +  Fire  =  Steam\nSteam  +  Earth  =  Geyser\n")
	require.Empty(t, errs)

	counts := CountUses(crafts, seeds)
	require.Equal(t, 1, counts["Water"])
	require.Equal(t, 1, counts["Fire"])
	require.Equal(t, 1, counts["Earth"])
	require.Equal(t, 1, counts["Steam"])
	require.Equal(t, 0, counts["Geyser"])
}

func newTestHandlerForDynamicCheck(t *testing.T) *handler.Handler {
	t.Helper()
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"result":"Steam","emoji":"💨","isNew":false}]`))
	}))
	t.Cleanup(srv.Close)

	db, err := store.OpenRecipeDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	items := store.NewItemStore(db)
	recipes := store.NewRecipeStore(db)
	require.NoError(t, items.Bootstrap(ctx, seeds))

	cfg := oracle.DefaultConfig()
	cfg.RequestAddr = srv.URL
	client := oracle.NewClient(cfg, nil)

	return handler.New(items, recipes, client, handler.DefaultConfig(), nil)
}

func TestDynamicCheckFlagsAMismatch(t *testing.T) {
	h := newTestHandlerForDynamicCheck(t)
	crafts, errs := Parse("Water  +  Fire  =  Magma\n")
	require.Empty(t, errs)

	result, err := DynamicCheck(context.Background(), h, crafts)
	require.NoError(t, err)
	require.Len(t, result.Mismatches, 1)
	require.Equal(t, "Steam", result.Mismatches[0].Actual)
	require.Equal(t, "Magma", result.Mismatches[0].Claimed)
}

package diagnostic

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/handler"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/oracle"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/store"
)

func newTestHandler(t *testing.T) *handler.Handler {
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
	seeds := []string{"Water", "Fire", "Wind", "Earth"}
	require.NoError(t, items.Bootstrap(ctx, seeds))

	cfg := oracle.DefaultConfig()
	cfg.RequestAddr = srv.URL
	client := oracle.NewClient(cfg, nil)

	return handler.New(items, recipes, client, handler.DefaultConfig(), nil)
}

func TestRandomWalkDiscoversNewElementsAndIsDeterministicWithASeededRNG(t *testing.T) {
	h := newTestHandler(t)
	seeds := []string{"Water", "Fire", "Wind", "Earth"}

	steps, err := RandomWalk(context.Background(), h, seeds, 5, rand.New(rand.NewSource(42)), nil)
	require.NoError(t, err)
	require.Len(t, steps, 5)

	var discovered bool
	for _, s := range steps {
		if s.Discovered {
			discovered = true
			require.Equal(t, "Steam", s.Result)
		}
	}
	require.True(t, discovered)
}

func TestRandomWalkOnlyDiscoversAnElementOnce(t *testing.T) {
	h := newTestHandler(t)
	seeds := []string{"Water", "Fire", "Wind", "Earth"}

	steps, err := RandomWalk(context.Background(), h, seeds, 10, rand.New(rand.NewSource(7)), nil)
	require.NoError(t, err)

	discoveries := 0
	for _, s := range steps {
		if s.Discovered {
			discoveries++
		}
	}
	require.Equal(t, 1, discoveries)
}

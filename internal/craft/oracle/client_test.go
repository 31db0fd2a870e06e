package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEncodeName(t *testing.T) {
	require.Equal(t, "Water Fire", encodeName("Water Fire"))
	require.Equal(t, `a\\b`, encodeName(`a\b`))
	require.Equal(t, "%C3%A9", encodeName("é"))
}

func testConfig(addr string) Config {
	cfg := DefaultConfig()
	cfg.RequestAddr = addr
	cfg.RequestCooldown = time.Millisecond
	return cfg
}

func TestRequestSingleWordLimitShortCircuits(t *testing.T) {
	ctx := context.Background()
	client := NewClient(testConfig("http://unused.invalid"), nil)

	longName := strings.Repeat("x", WordCombineCharLimit+1)
	result, err := client.RequestSingle(ctx, longName, "Water")
	require.NoError(t, err)
	require.Equal(t, "Nothing", result.Result)
}

func TestRequestSingleSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqs []wireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqs))
		require.Len(t, reqs, 1)
		require.Equal(t, "Water", reqs[0][0])
		require.Equal(t, "Fire", reqs[0][1])

		_ = json.NewEncoder(w).Encode([]wireResponse{
			{Result: "Steam", Emoji: "💨", IsNew: true},
		})
	}))
	defer srv.Close()

	ctx := context.Background()
	client := NewClient(testConfig(srv.URL), nil)

	result, err := client.RequestSingle(ctx, "Water", "Fire")
	require.NoError(t, err)
	require.Equal(t, "Steam", result.Result)
	require.True(t, result.IsNew)

	// Second call should hit the pair cache, not the network; the server
	// is left running so a network hit would have succeeded either way,
	// but results should stay consistent.
	result, err = client.RequestSingle(ctx, "Water", "Fire")
	require.NoError(t, err)
	require.Equal(t, "Steam", result.Result)
}

func TestRequestSingleHTTP500ShortCircuitsAndLogsSidecar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sidecar := filepath.Join(t.TempDir(), "500s.txt")
	ctx := context.Background()
	client := NewClient(testConfig(srv.URL), nil, WithSidecarPath(sidecar))

	result, err := client.RequestSingle(ctx, "Weird", "Input")
	require.NoError(t, err)
	require.Equal(t, "Nothing", result.Result)

	contents, err := os.ReadFile(sidecar)
	require.NoError(t, err)
	require.Contains(t, string(contents), "Weird\tInput")
}

func TestRequestBatchChunksAndShortCircuits(t *testing.T) {
	var gotSizes []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqs []wireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqs))
		gotSizes = append(gotSizes, len(reqs))

		resp := make([]wireResponse, len(reqs))
		for i := range resp {
			resp[i] = wireResponse{Result: "Something"}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.BatchLimit = 2

	ctx := context.Background()
	client := NewClient(cfg, nil)

	longName := strings.Repeat("y", WordCombineCharLimit+1)
	pairs := [][2]string{
		{"A", "B"},
		{"C", "D"},
		{"E", "F"},
		{longName, "G"},
	}

	results, err := client.RequestBatch(ctx, pairs)
	require.NoError(t, err)
	require.Len(t, results, 4)
	require.Equal(t, "Something", results[0].Result)
	require.Equal(t, "Something", results[2].Result)
	require.Equal(t, "Nothing", results[3].Result)

	// 3 network-eligible pairs chunked at batch limit 2 => sizes [2, 1].
	require.Equal(t, []int{2, 1}, gotSizes)
}

func TestRequestSingleNeverCachesNothingSoReverificationReachesTheNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		result := "Nothing"
		if calls == 2 {
			result = "Storm"
		}
		_ = json.NewEncoder(w).Encode([]wireResponse{{Result: result}})
	}))
	defer srv.Close()

	ctx := context.Background()
	client := NewClient(testConfig(srv.URL), nil)

	result, err := client.RequestSingle(ctx, "Earth", "Wind")
	require.NoError(t, err)
	require.Equal(t, "Nothing", result.Result)
	require.Equal(t, 1, calls)

	// A second call for the same pair must reach the network again rather
	// than being served a cached "Nothing" from the first attempt.
	result, err = client.RequestSingle(ctx, "Earth", "Wind")
	require.NoError(t, err)
	require.Equal(t, "Storm", result.Result)
	require.Equal(t, 2, calls)
}

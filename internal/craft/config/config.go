// Package config loads config.json — the persistent settings file spec.md
// §4.3/§6 names (local_only, trust_cache_nothing, request_cooldown, and so
// on) — and translates it into the oracle and handler package Config
// structs, mirroring the teacher's flag-parsing main.go and the Python
// original's persistent_config = util.load_json("config.json").
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/handler"
	"github.com/gocraft/infinite-craft-oracle/internal/craft/oracle"
)

// File is the on-disk shape of config.json.
type File struct {
	LocalOnly            bool    `json:"local_only"`
	TrustCacheNothing     bool    `json:"trust_cache_nothing"`
	TrustFirstRunNothing  bool    `json:"trust_first_run_nothing"`
	RequestCooldown       float64 `json:"request_cooldown"`
	NothingVerification   int     `json:"nothing_verification"`
	NothingCooldown       float64 `json:"nothing_cooldown"`
	BatchLimit            int     `json:"batch_limit"`
	ErrorRetry            bool    `json:"error_retry"`
	PrintNewRecipes       bool    `json:"print_new_recipes"`
	RequestAddr           string  `json:"request_addr"`
}

// Default returns config.json's defaults, matching oracle.DefaultConfig and
// handler.DefaultConfig.
func Default() File {
	oc := oracle.DefaultConfig()
	hc := handler.DefaultConfig()
	return File{
		RequestCooldown:     oc.RequestCooldownSeconds,
		BatchLimit:          oc.BatchLimit,
		ErrorRetry:          oc.ErrorRetry,
		RequestAddr:         oc.RequestAddr,
		NothingVerification: hc.NothingVerification,
		NothingCooldown:     hc.NothingCooldown.Seconds(),
	}
}

// Load reads path and unmarshals it over the defaults. A missing file is
// not an error — it returns the defaults unchanged, matching the teacher's
// tolerance for a config-free first run.
func Load(path string) (File, error) {
	f := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return f, fmt.Errorf("reading config %q: %w", path, err)
	}

	if err := json.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return f, nil
}

// OracleConfig projects f onto oracle.Config.
func (f File) OracleConfig() oracle.Config {
	return oracle.Config{
		RequestAddr:            f.RequestAddr,
		RequestCooldown:        time.Duration(f.RequestCooldown * float64(time.Second)),
		RequestCooldownSeconds: f.RequestCooldown,
		BatchLimit:             f.BatchLimit,
		ErrorRetry:             f.ErrorRetry,
	}
}

// HandlerConfig projects f onto handler.Config.
func (f File) HandlerConfig() handler.Config {
	return handler.Config{
		LocalOnly:            f.LocalOnly,
		TrustCacheNothing:    f.TrustCacheNothing,
		TrustFirstRunNothing: f.TrustFirstRunNothing,
		NothingVerification:  f.NothingVerification,
		NothingCooldown:      time.Duration(f.NothingCooldown * float64(time.Second)),
		PrintNewRecipes:      f.PrintNewRecipes,
	}
}

package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/naveenkumar-devtech/refind/internal/claims"
	"github.com/naveenkumar-devtech/refind/internal/embed"
	"github.com/naveenkumar-devtech/refind/internal/engine"
	"github.com/naveenkumar-devtech/refind/internal/match"
	"github.com/naveenkumar-devtech/refind/internal/model"
	"github.com/naveenkumar-devtech/refind/internal/notify"
	"github.com/naveenkumar-devtech/refind/internal/store"
)

// seedDefaults registers every config key with viper. Without a
// registered default viper never looks a key up in the environment, so
// this is what makes the env layer reachable for keys no config file
// mentions.
func seedDefaults() {
	def := model.DefaultConfig()
	viper.SetDefault("store.path", def.Store.Path)
	viper.SetDefault("embedding.provider", def.Embedding.Provider)
	viper.SetDefault("embedding.model", def.Embedding.Model)
	viper.SetDefault("embedding.api_key", def.Embedding.APIKey)
	viper.SetDefault("embedding.base_url", def.Embedding.BaseURL)
	viper.SetDefault("embedding.timeout", def.Embedding.Timeout)
	viper.SetDefault("embedding.cache_ttl", def.Embedding.CacheTTL)
	viper.SetDefault("embedding.requests_per_second", def.Embedding.RequestsPerSecond)
	viper.SetDefault("matching.semantic_weight", def.Matching.SemanticWeight)
	viper.SetDefault("matching.location_bonus", def.Matching.LocationBonus)
	viper.SetDefault("matching.location_threshold", def.Matching.LocationThreshold)
	viper.SetDefault("matching.admission_threshold", def.Matching.AdmissionThreshold)
	viper.SetDefault("matching.limit", def.Matching.Limit)
	viper.SetDefault("matching.mask_keep_tokens", def.Matching.MaskKeepTokens)
	viper.SetDefault("claims.multi_signal_threshold", def.Claims.MultiSignalThreshold)
	viper.SetDefault("claims.date_window_days", def.Claims.DateWindowDays)
	viper.SetDefault("notify.endpoint", def.Notify.Endpoint)
	viper.SetDefault("notify.timeout", def.Notify.Timeout)
	viper.SetDefault("concurrency.match_workers", def.Concurrency.MatchWorkers)
}

// loadConfig layers the config file and REFIND_* environment variables
// over the built-in defaults.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	if cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildEngine assembles the full stack. The returned cleanup closes the
// store and the embedding provider, after draining background matching.
func buildEngine() (*engine.Engine, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := newLogger()

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, nil, err
	}

	provider, err := embed.NewFromConfig(cfg.Embedding)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	ranker := match.NewRanker(provider, cfg.Matching, log)
	verifier := claims.NewVerifier(cfg.Claims)
	notifier := notify.NewService(cfg.Notify, log)

	eng := engine.New(st, ranker, verifier, notifier, cfg, log)
	cleanup := func() {
		eng.WaitBackground()
		if provider != nil {
			_ = provider.Close()
		}
		_ = st.Close()
	}
	return eng, cleanup, nil
}

// actingUser resolves the user identity for the current invocation.
func actingUser() (string, error) {
	if userID != "" {
		return userID, nil
	}
	if u := os.Getenv("REFIND_USER"); u != "" {
		return u, nil
	}
	if u := os.Getenv("USER"); u != "" {
		return u, nil
	}
	return "", fmt.Errorf("no user identity: pass --user or set REFIND_USER")
}

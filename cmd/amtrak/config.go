package main

import (
	"io"
	"strings"
	"time"

	"github.com/mirzahilmi/amtrak-trains/internal/common/config"
	"github.com/mirzahilmi/amtrak-trains/internal/common/constant"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const envPrefix = "AMTRAK"

// Unmarshal only sees keys viper knows about, so every key gets a default
// even when it is empty.
var defaults = map[string]any{
	"development":          false,
	"log_level":            zerolog.LevelInfoValue,
	"feed.url":             constant.FEED_URL,
	"feed.timeout":         constant.FEED_TIMEOUT,
	"cipher.salt_hex":      constant.CIPHER_SALT_HEX,
	"cipher.iv_hex":        constant.CIPHER_IV_HEX,
	"cipher.public_key":    constant.CIPHER_PUBLIC_KEY,
	"vault.url":            "",
	"vault.token":          "",
	"vault.mount":          "secret",
	"vault.path":           "",
	"s3.access_key_id":     "",
	"s3.secret_access_key": "",
	"s3.default_region":    "us-east-1",
	"s3.default_bucket":    "",
	"s3.url":               "",
	"archive.enabled":      false,
	"archive.prefix":       "trains",
	"archive.secret_key":   "",
}

func loadConfig(v *viper.Viper, file string) (config.Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, err
		}
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return config.Config{}, err
	}
	if cfg.Feed.Timeout <= 0 {
		cfg.Feed.Timeout = constant.FEED_TIMEOUT
	}
	return cfg, nil
}

func setupLogger(w io.Writer, cfg config.Config, run ulid.ULID) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.IsDevelopment {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Str("run", run.String()).Logger()
}

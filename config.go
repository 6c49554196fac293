package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"wildmark/server/internal/world"
	"wildmark/server/logging"
)

// serverConfig is the resolved process configuration: flags, environment,
// and optional config file merged by viper.
type serverConfig struct {
	Addr          string
	SpeciesPath   string
	ArchiveDir    string
	ArchiveKeep   int
	LogSinks      []string
	LogLevel      string
	LogBufferSize int
	LogSQLitePath string
	World         world.Config
}

func loadConfig() (serverConfig, error) {
	v := viper.New()
	v.SetConfigName("wildmark")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/wildmark")
	v.SetEnvPrefix("WILDMARK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("species_path", "")
	v.SetDefault("archive.dir", "")
	v.SetDefault("archive.keep", 20)
	v.SetDefault("log.sinks", []string{"console"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.buffer_size", 512)
	v.SetDefault("log.sqlite_path", "wildmark-events.db")
	v.SetDefault("world.seed", world.DefaultSeed)
	v.SetDefault("world.width", world.DefaultWidth)
	v.SetDefault("world.height", world.DefaultHeight)
	v.SetDefault("world.foxes", 6)
	v.SetDefault("world.wolves", 4)
	v.SetDefault("world.vipers", 4)
	v.SetDefault("world.trees", 40)
	v.SetDefault("world.stones", 25)
	v.SetDefault("world.storage_boxes", 6)
	v.SetDefault("world.rain_collectors", 4)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return serverConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := serverConfig{
		Addr:          v.GetString("addr"),
		SpeciesPath:   v.GetString("species_path"),
		ArchiveDir:    v.GetString("archive.dir"),
		ArchiveKeep:   v.GetInt("archive.keep"),
		LogSinks:      v.GetStringSlice("log.sinks"),
		LogLevel:      v.GetString("log.level"),
		LogBufferSize: v.GetInt("log.buffer_size"),
		LogSQLitePath: v.GetString("log.sqlite_path"),
		World: world.Config{
			Seed:               v.GetString("world.seed"),
			Width:              v.GetFloat64("world.width"),
			Height:             v.GetFloat64("world.height"),
			FoxCount:           v.GetInt("world.foxes"),
			WolfCount:          v.GetInt("world.wolves"),
			ViperCount:         v.GetInt("world.vipers"),
			TreeCount:          v.GetInt("world.trees"),
			StoneCount:         v.GetInt("world.stones"),
			StorageBoxCount:    v.GetInt("world.storage_boxes"),
			RainCollectorCount: v.GetInt("world.rain_collectors"),
		},
	}
	return cfg, nil
}

func (c serverConfig) loggingConfig() logging.Config {
	return logging.Config{
		EnabledSinks:    c.LogSinks,
		BufferSize:      c.LogBufferSize,
		MinimumSeverity: severityFromString(c.LogLevel),
		SQLitePath:      c.LogSQLitePath,
	}
}

func severityFromString(level string) logging.Severity {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logging.SeverityDebug
	case "warn", "warning":
		return logging.SeverityWarn
	case "error":
		return logging.SeverityError
	default:
		return logging.SeverityInfo
	}
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	app "github.com/rocketscienceinc/decrypto-backend/internal"
	"github.com/rocketscienceinc/decrypto-backend/internal/config"
)

var CLI struct {
	Config   string `short:"c" long:"config" default:"config.yml" help:"Path to YAML configuration file"`
	LogLevel string `short:"l" long:"log-level" help:"Log level (overrides config)"`
}

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	kong.Parse(&CLI, kong.Description("Decrypto game server"))

	// .env is optional
	_ = godotenv.Load()

	conf := config.MustLoad(CLI.Config)
	if CLI.LogLevel != "" {
		conf.LogLevel = CLI.LogLevel
	}

	logger := initLogger(conf)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	if conf.LogFormat == "text" {
		return slog.New(charmlog.NewWithOptions(os.Stderr, charmlog.Options{
			Level:           charmlog.Level(level),
			ReportTimestamp: true,
		}))
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

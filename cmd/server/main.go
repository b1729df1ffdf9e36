package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/iliyamo/cinema-showtimes/internal/cli"
	"github.com/iliyamo/cinema-showtimes/internal/config"
	"github.com/iliyamo/cinema-showtimes/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"YAML config file." type:"path" env:"CONFIG_PATH"`
	LogLevel string `help:"Log level; overrides LOG_LEVEL."`

	Serve        cli.ServeCmd        `cmd:"" help:"Run the HTTP API." default:"1"`
	Movies       cli.MoviesCmd       `cmd:"" help:"Print the filtered, sorted listing."`
	Schedule     cli.ScheduleCmd     `cmd:"" help:"Print the weekly schedule."`
	Migrate      cli.MigrateCmd      `cmd:"" help:"Create the MySQL catalog tables and optionally seed them."`
	HashPassword cli.HashPasswordCmd `cmd:"" help:"Print a bcrypt hash for ADMIN_PASSWORD_HASH."`
	AdminToken   cli.AdminTokenCmd   `cmd:"" help:"Mint an admin token for catalog reloads."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("showtimes"),
		kong.Description("Cinema listing, schedule and booking form service"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if CLI.Config != "" {
		_ = os.Setenv("CONFIG_PATH", CLI.Config)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.LogLevel != "" {
		cfg.App.LogLevel = CLI.LogLevel
	}
	if err := logger.Init(logger.Config{
		Level: cfg.App.LogLevel,
		Dir:   cfg.App.LogDir,
		JSON:  cfg.App.Env == "prod",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = ctx.Run(&cli.Context{Config: cfg, Out: os.Stdout, Now: time.Now})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config string `short:"c" type:"path" default:"teenpatti.hcl" env:"TEENPATTI_CONFIG" help:"HCL configuration file (optional)"`
	Debug  bool   `env:"TEENPATTI_DEBUG" help:"Enable debug logging"`
	JSON   bool   `name:"log-json" env:"TEENPATTI_LOG_JSON" help:"Log as JSON"`
	Seed   *int64 `env:"TEENPATTI_SEED" help:"Deterministic RNG seed (overrides the config file)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play against bots in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Serve tables over WebSocket"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot-only tables and report statistics"`
	Connect  ConnectCmd       `cmd:"" help:"Play a served table from a line prompt"`
	Rank     RankCmd          `cmd:"" help:"Evaluate and name a three-card hand"`
}

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("teenpatti"),
		kong.Description("Teen Patti against bots, in the terminal or over WebSocket"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

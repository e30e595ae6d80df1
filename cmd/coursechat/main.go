package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI represents the main CLI structure
type CLI struct {
	Config   string `short:"c" help:"Path to config file" type:"path"`
	APIKey   string `env:"OPENAI_API_KEY" help:"Model provider API key"`
	BaseURL  string `help:"Custom API base URL"`
	Model    string `help:"Model to use"`
	LogLevel string `default:"info" help:"Log level"`

	Serve  ServeCmd  `cmd:"" default:"1" help:"Start the HTTP API server (default)"`
	Ingest IngestCmd `cmd:"" help:"Load course documents into the catalog"`
	Ask    AskCmd    `cmd:"" help:"Ask a single question from the command line"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("coursechat"),
		kong.Description("Question answering over course materials"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

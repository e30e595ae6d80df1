package main

import (
	"context"
	"fmt"
	"strings"
)

// AskCmd asks a single question without starting the server
type AskCmd struct {
	Text      []string `arg:"" help:"The question to ask"`
	SessionID string   `help:"Continue a previous session"`
	Sources   bool     `help:"Print the answer's sources"`
}

func (a *AskCmd) Run(cli *CLI) error {
	logger := createLogger(cli.LogLevel)

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	db, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	sys, err := buildSystem(cfg, db, logger)
	if err != nil {
		return err
	}

	answer, sources, sid, err := sys.Answer(context.Background(), strings.Join(a.Text, " "), a.SessionID)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	if a.Sources && len(sources) > 0 {
		fmt.Println("\nSources:")
		for _, src := range sources {
			if src.URL != "" {
				fmt.Printf("  - %s (%s)\n", src.Text, src.URL)
			} else {
				fmt.Printf("  - %s\n", src.Text)
			}
		}
	}
	logger.Debug("session", "id", sid)
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/elee1766/coursechat/src/ingest"
)

// IngestCmd loads course documents into the catalog
type IngestCmd struct {
	Dir   string `arg:"" optional:"" help:"Documents directory (defaults to config docs_dir)"`
	Clear bool   `help:"Re-ingest courses that already exist"`
}

func (i *IngestCmd) Run(cli *CLI) error {
	logger := createLogger(cli.LogLevel)

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	dir := i.Dir
	if dir == "" {
		dir = cfg.RAG.DocsDir
	}

	db, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ing := &ingest.Ingestor{
		FS:     afero.NewOsFs(),
		Store:  db,
		Logger: logger,
		Clear:  i.Clear,
	}

	stats, err := ing.Run(context.Background(), dir)
	if err != nil {
		return err
	}

	fmt.Printf("Ingested %d courses (%d chunks), skipped %d\n",
		stats.CoursesAdded, stats.ChunksAdded, stats.CoursesSkipped)
	return nil
}

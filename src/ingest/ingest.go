// Package ingest loads course documents from disk into the course store.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/afero"

	"github.com/elee1766/coursechat/src/storage"
)

// Store is the storage surface ingestion writes to. *storage.DB
// satisfies it.
type Store interface {
	AddCourse(ctx context.Context, course storage.Course, chunks []storage.Chunk) error
	HasCourse(ctx context.Context, title string) (bool, error)
}

// Ingestor walks a documents directory and loads every course script it
// finds. Already-ingested titles are skipped unless Clear is set.
type Ingestor struct {
	FS      afero.Fs
	Store   Store
	Chunker *Chunker
	Logger  *slog.Logger
	Clear   bool
}

// Stats summarizes one ingestion run.
type Stats struct {
	CoursesAdded   int
	CoursesSkipped int
	ChunksAdded    int
}

// Run ingests every .txt, .html and .htm file under dir. Files that fail
// to parse are logged and skipped, they do not abort the run.
func (in *Ingestor) Run(ctx context.Context, dir string) (Stats, error) {
	var stats Stats

	err := afero.Walk(in.FS, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".html" && ext != ".htm" {
			return nil
		}

		doc, err := in.loadDocument(path, ext)
		if err != nil {
			in.logger().Warn("skipping unparseable document", "path", path, "error", err)
			return nil
		}

		exists, err := in.Store.HasCourse(ctx, doc.Course.Title)
		if err != nil {
			return fmt.Errorf("failed to check course %q: %w", doc.Course.Title, err)
		}
		if exists && !in.Clear {
			in.logger().Info("course already ingested, skipping", "title", doc.Course.Title)
			stats.CoursesSkipped++
			return nil
		}

		chunks := doc.Chunks(in.chunker())
		if err := in.Store.AddCourse(ctx, doc.Course, chunks); err != nil {
			return fmt.Errorf("failed to store course %q: %w", doc.Course.Title, err)
		}

		in.logger().Info("course ingested",
			"title", doc.Course.Title,
			"lessons", len(doc.Course.Lessons),
			"chunks", len(chunks))
		stats.CoursesAdded++
		stats.ChunksAdded += len(chunks)
		return nil
	})
	if err != nil {
		return stats, err
	}
	return stats, nil
}

func (in *Ingestor) loadDocument(path, ext string) (*Document, error) {
	f, err := in.FS.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if ext == ".txt" {
		return ParseCourseScript(f, fallback)
	}

	raw, err := afero.ReadAll(f)
	if err != nil {
		return nil, err
	}

	title, text, err := htmlToText(string(raw))
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = fallback
	}

	doc, err := ParseCourseScript(strings.NewReader(text), title)
	if err != nil {
		return nil, err
	}
	if len(doc.Course.Lessons) == 0 && doc.Course.Title == title {
		// Plain page without lesson markers: store as one course-level text.
		doc.LessonTexts = map[int]string{-1: text}
	}
	return doc, nil
}

// htmlToText strips markup with html-to-markdown and pulls the page title
// out for use as the course title fallback.
func htmlToText(html string) (title, text string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse html: %w", err)
	}
	title = strings.TrimSpace(doc.Find("title").First().Text())

	converter := md.NewConverter("", true, nil)
	text, err = converter.ConvertString(html)
	if err != nil {
		return "", "", fmt.Errorf("failed to convert html: %w", err)
	}

	text = strings.TrimSpace(text)
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return title, text, nil
}

func (in *Ingestor) chunker() *Chunker {
	if in.Chunker == nil {
		return NewChunker(defaultChunkSize, defaultOverlap)
	}
	return in.Chunker
}

func (in *Ingestor) logger() *slog.Logger {
	if in.Logger == nil {
		return slog.Default()
	}
	return in.Logger
}

package ingest

import (
	"regexp"
	"strings"
)

const (
	defaultChunkSize = 800
	defaultOverlap   = 100
)

// Splits on sentence-ending punctuation followed by whitespace. Good
// enough for transcript prose; abbreviations may oversplit occasionally.
var sentenceEnd = regexp.MustCompile(`([.!?])\s+`)

// Chunker splits prose into overlapping pieces on sentence boundaries.
type Chunker struct {
	ChunkSize int
	Overlap   int
}

func NewChunker(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = defaultOverlap
	}
	return &Chunker{ChunkSize: chunkSize, Overlap: overlap}
}

// Split breaks text into chunks of at most ChunkSize characters, never
// splitting inside a sentence. Consecutive chunks share roughly Overlap
// characters of trailing sentences for retrieval continuity.
func (c *Chunker) Split(text string) []string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}

	sentences := splitSentences(text)

	var chunks []string
	var current []string
	currentLen := 0

	for i := 0; i < len(sentences); i++ {
		s := sentences[i]

		if currentLen > 0 && currentLen+1+len(s) > c.ChunkSize {
			chunks = append(chunks, strings.Join(current, " "))

			// Carry trailing sentences into the next chunk as overlap.
			var overlap []string
			overlapLen := 0
			for j := len(current) - 1; j >= 0; j-- {
				sl := len(current[j])
				if overlapLen+sl > c.Overlap {
					break
				}
				overlap = append([]string{current[j]}, overlap...)
				overlapLen += sl + 1
			}
			current = overlap
			currentLen = overlapLen
		}

		current = append(current, s)
		currentLen += len(s) + 1
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

func splitSentences(text string) []string {
	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")

	var sentences []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

package ingest

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/elee1766/coursechat/src/storage"
)

var lessonHeader = regexp.MustCompile(`^Lesson (\d+):\s*(.*)$`)

// Document is a parsed course script: the course metadata plus the raw
// text of each lesson, ready for chunking.
type Document struct {
	Course      storage.Course
	LessonTexts map[int]string
}

// ParseCourseScript reads the course document format:
//
//	Course Title: <title>
//	Course Link: <url>
//	Course Instructor: <name>
//
//	Lesson 0: <title>
//	Lesson Link: <url>
//	<content>
//
// Content before the first lesson marker is attached to the course itself
// (lesson number -1).
func ParseCourseScript(r io.Reader, fallbackTitle string) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := &Document{LessonTexts: map[int]string{}}

	currentLesson := -1
	var content strings.Builder
	inHeader := true

	flush := func() {
		text := strings.TrimSpace(content.String())
		if text != "" {
			doc.LessonTexts[currentLesson] = text
		}
		content.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()

		if inHeader {
			switch {
			case strings.HasPrefix(line, "Course Title:"):
				doc.Course.Title = strings.TrimSpace(strings.TrimPrefix(line, "Course Title:"))
				continue
			case strings.HasPrefix(line, "Course Link:"):
				doc.Course.Link = strings.TrimSpace(strings.TrimPrefix(line, "Course Link:"))
				continue
			case strings.HasPrefix(line, "Course Instructor:"):
				doc.Course.Instructor = strings.TrimSpace(strings.TrimPrefix(line, "Course Instructor:"))
				continue
			case strings.TrimSpace(line) == "":
				continue
			}
			inHeader = false
		}

		if m := lessonHeader.FindStringSubmatch(line); m != nil {
			flush()
			number, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, fmt.Errorf("bad lesson number in %q: %w", line, err)
			}
			currentLesson = number
			doc.Course.Lessons = append(doc.Course.Lessons, storage.Lesson{
				Number: number,
				Title:  strings.TrimSpace(m[2]),
			})
			continue
		}

		if strings.HasPrefix(line, "Lesson Link:") && len(doc.Course.Lessons) > 0 {
			doc.Course.Lessons[len(doc.Course.Lessons)-1].Link =
				strings.TrimSpace(strings.TrimPrefix(line, "Lesson Link:"))
			continue
		}

		content.WriteString(line)
		content.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read course script: %w", err)
	}
	flush()

	if doc.Course.Title == "" {
		doc.Course.Title = fallbackTitle
	}
	if doc.Course.Title == "" {
		return nil, fmt.Errorf("course script has no title")
	}

	for i := range doc.Course.Lessons {
		doc.Course.Lessons[i].CourseTitle = doc.Course.Title
	}

	return doc, nil
}

// Chunks splits every lesson's text and returns the chunk rows to store,
// ordered by lesson then position.
func (d *Document) Chunks(chunker *Chunker) []storage.Chunk {
	var chunks []storage.Chunk

	appendLesson := func(lessonNumber int) {
		text, ok := d.LessonTexts[lessonNumber]
		if !ok {
			return
		}
		for i, piece := range chunker.Split(text) {
			chunks = append(chunks, storage.Chunk{
				CourseTitle:  d.Course.Title,
				LessonNumber: lessonNumber,
				ChunkIndex:   i,
				Content:      piece,
			})
		}
	}

	appendLesson(-1)
	for _, lesson := range d.Course.Lessons {
		appendLesson(lesson.Number)
	}
	return chunks
}

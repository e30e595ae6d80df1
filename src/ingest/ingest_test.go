package ingest

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elee1766/coursechat/src/storage"
)

type fakeStore struct {
	courses map[string]storage.Course
	chunks  map[string][]storage.Chunk
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		courses: map[string]storage.Course{},
		chunks:  map[string][]storage.Chunk{},
	}
}

func (f *fakeStore) AddCourse(ctx context.Context, course storage.Course, chunks []storage.Chunk) error {
	f.courses[course.Title] = course
	f.chunks[course.Title] = chunks
	return nil
}

func (f *fakeStore) HasCourse(ctx context.Context, title string) (bool, error) {
	_, ok := f.courses[title]
	return ok, nil
}

func newIngestor(fs afero.Fs, store Store) *Ingestor {
	return &Ingestor{FS: fs, Store: store}
}

func TestIngestor_Run(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/course1.txt", []byte(sampleScript), 0644))
	require.NoError(t, afero.WriteFile(fs, "/docs/notes.md", []byte("ignored"), 0644))

	store := newFakeStore()
	stats, err := newIngestor(fs, store).Run(context.Background(), "/docs")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.CoursesAdded)
	assert.Equal(t, 0, stats.CoursesSkipped)
	assert.Equal(t, 2, stats.ChunksAdded)

	course, ok := store.courses["Building MCP Servers"]
	require.True(t, ok)
	assert.Len(t, course.Lessons, 2)
}

func TestIngestor_SkipsExistingCourses(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/course1.txt", []byte(sampleScript), 0644))

	store := newFakeStore()
	ing := newIngestor(fs, store)

	_, err := ing.Run(context.Background(), "/docs")
	require.NoError(t, err)

	stats, err := ing.Run(context.Background(), "/docs")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CoursesAdded)
	assert.Equal(t, 1, stats.CoursesSkipped)
}

func TestIngestor_ClearReingests(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/course1.txt", []byte(sampleScript), 0644))

	store := newFakeStore()
	ing := newIngestor(fs, store)

	_, err := ing.Run(context.Background(), "/docs")
	require.NoError(t, err)

	ing.Clear = true
	stats, err := ing.Run(context.Background(), "/docs")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CoursesAdded)
	assert.Equal(t, 0, stats.CoursesSkipped)
}

func TestIngestor_HTMLDocument(t *testing.T) {
	html := `<html><head><title>Web Course</title></head>
<body><h1>Welcome</h1><p>This page has some prose about the course.</p>
<script>ignored()</script></body></html>`

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/page.html", []byte(html), 0644))

	store := newFakeStore()
	stats, err := newIngestor(fs, store).Run(context.Background(), "/docs")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CoursesAdded)

	course, ok := store.courses["Web Course"]
	require.True(t, ok, "title comes from the html <title> tag")
	assert.Empty(t, course.Lessons)

	chunks := store.chunks["Web Course"]
	require.NotEmpty(t, chunks)
	assert.Equal(t, -1, chunks[0].LessonNumber, "pages without lesson markers store course-level text")
	assert.Contains(t, chunks[0].Content, "prose about the course")
}

func TestIngestor_UnparseableFileDoesNotAbort(t *testing.T) {
	// A single line past the scanner limit fails the parse.
	oversized := bytes.Repeat([]byte("x"), 2*1024*1024)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/broken.txt", oversized, 0644))
	require.NoError(t, afero.WriteFile(fs, "/docs/good.txt", []byte(sampleScript), 0644))

	store := newFakeStore()
	stats, err := newIngestor(fs, store).Run(context.Background(), "/docs")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CoursesAdded)
}

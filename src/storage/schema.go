package storage

import "time"

// Course is a single ingested course with its lesson index.
type Course struct {
	Title      string    `json:"title" db:"title"`
	Link       string    `json:"link" db:"link"`
	Instructor string    `json:"instructor" db:"instructor"`
	CreatedAt  time.Time `json:"created_at,omitempty" db:"created_at"`

	Lessons []Lesson `json:"lessons,omitempty" db:"-"`
}

// Lesson is one lesson of a course. Content lives in chunks, not here.
type Lesson struct {
	CourseTitle string `json:"course_title" db:"course_title"`
	Number      int    `json:"number" db:"number"`
	Title       string `json:"title" db:"title"`
	Link        string `json:"link" db:"link"`
}

// Chunk is a searchable slice of lesson content. LessonNumber is -1 for
// course-level content not tied to a lesson.
type Chunk struct {
	CourseTitle  string `json:"course_title" db:"course_title"`
	LessonNumber int    `json:"lesson_number" db:"lesson_number"`
	ChunkIndex   int    `json:"chunk_index" db:"chunk_index"`
	Content      string `json:"content" db:"content"`
}

// SearchResult is a content chunk matched by a catalog search, with the
// metadata needed to label and cite it.
type SearchResult struct {
	CourseTitle  string `json:"course_title" db:"course_title"`
	LessonNumber int    `json:"lesson_number" db:"lesson_number"`
	LessonLink   string `json:"lesson_link" db:"lesson_link"`
	Content      string `json:"content" db:"content"`
}

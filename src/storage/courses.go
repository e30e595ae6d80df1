package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// ErrCourseNotFound indicates no catalog course matched the requested name.
var ErrCourseNotFound = errors.New("course not found")

// AddCourse inserts a course with its lessons and content chunks in one
// transaction, replacing any previous ingest of the same title.
func (d *DB) AddCourse(ctx context.Context, course Course, chunks []Chunk) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM chunks WHERE course_title = ?`,
		`DELETE FROM lessons WHERE course_title = ?`,
		`DELETE FROM courses WHERE title = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, course.Title); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO courses (title, link, instructor) VALUES (?, ?, ?)`,
		course.Title, course.Link, course.Instructor); err != nil {
		return fmt.Errorf("failed to insert course %q: %w", course.Title, err)
	}

	for _, lesson := range course.Lessons {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO lessons (course_title, number, title, link) VALUES (?, ?, ?, ?)`,
			course.Title, lesson.Number, lesson.Title, lesson.Link); err != nil {
			return fmt.Errorf("failed to insert lesson %d: %w", lesson.Number, err)
		}
	}

	for _, chunk := range chunks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chunks (course_title, lesson_number, chunk_index, content) VALUES (?, ?, ?, ?)`,
			chunk.CourseTitle, chunk.LessonNumber, chunk.ChunkIndex, chunk.Content); err != nil {
			return fmt.Errorf("failed to insert chunk %d: %w", chunk.ChunkIndex, err)
		}
	}

	return tx.Commit()
}

// CourseCount returns the number of ingested courses.
func (d *DB) CourseCount(ctx context.Context) (int, error) {
	var count int
	if err := sqlscan.Get(ctx, d.db, &count, `SELECT COUNT(*) FROM courses`); err != nil {
		return 0, err
	}
	return count, nil
}

// CourseTitles returns all course titles in lexical order.
func (d *DB) CourseTitles(ctx context.Context) ([]string, error) {
	var titles []string
	if err := sqlscan.Select(ctx, d.db, &titles, `SELECT title FROM courses ORDER BY title`); err != nil {
		return nil, err
	}
	return titles, nil
}

// HasCourse reports whether a course with the exact title exists.
func (d *DB) HasCourse(ctx context.Context, title string) (bool, error) {
	var count int
	if err := sqlscan.Get(ctx, d.db, &count, `SELECT COUNT(*) FROM courses WHERE title = ?`, title); err != nil {
		return false, err
	}
	return count > 0, nil
}

// ResolveCourseTitle maps a possibly partial course name to the stored
// title, matching case-insensitively on substrings. Returns
// ErrCourseNotFound when nothing matches.
func (d *DB) ResolveCourseTitle(ctx context.Context, name string) (string, error) {
	var title string
	err := sqlscan.Get(ctx, d.db, &title,
		`SELECT title FROM courses WHERE title LIKE '%' || ? || '%' ORDER BY title LIMIT 1`, name)
	if err != nil {
		if sqlscan.NotFound(err) {
			return "", fmt.Errorf("%w: %s", ErrCourseNotFound, name)
		}
		return "", err
	}
	return title, nil
}

// GetCourseOutline returns the course and its lesson index for a possibly
// partial course name.
func (d *DB) GetCourseOutline(ctx context.Context, name string) (*Course, error) {
	title, err := d.ResolveCourseTitle(ctx, name)
	if err != nil {
		return nil, err
	}

	var course Course
	if err := sqlscan.Get(ctx, d.db, &course,
		`SELECT title, link, instructor, created_at FROM courses WHERE title = ?`, title); err != nil {
		return nil, err
	}

	if err := sqlscan.Select(ctx, d.db, &course.Lessons,
		`SELECT course_title, number, title, link FROM lessons WHERE course_title = ? ORDER BY number`, title); err != nil {
		return nil, err
	}

	return &course, nil
}

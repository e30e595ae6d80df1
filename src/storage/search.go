package storage

import (
	"context"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// SearchChunks finds content chunks matching the query by keyword, ordered
// by course, lesson and chunk position. courseName
// (substring match) and lessonNumber (nil = any) narrow the search. The
// lesson link is joined in so results can be cited without a second query.
func (d *DB) SearchChunks(ctx context.Context, query, courseName string, lessonNumber *int, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	q := `
	SELECT c.course_title, c.lesson_number, COALESCE(l.link, '') AS lesson_link, c.content
	FROM chunks c
	LEFT JOIN lessons l ON l.course_title = c.course_title AND l.number = c.lesson_number
	WHERE c.content LIKE '%' || ? || '%'`
	args := []interface{}{query}

	if courseName != "" {
		q += ` AND c.course_title LIKE '%' || ? || '%'`
		args = append(args, courseName)
	}
	if lessonNumber != nil {
		q += ` AND c.lesson_number = ?`
		args = append(args, *lessonNumber)
	}

	q += ` ORDER BY c.course_title, c.lesson_number, c.chunk_index LIMIT ?`
	args = append(args, limit)

	var results []SearchResult
	if err := sqlscan.Select(ctx, d.db, &results, q, args...); err != nil {
		return nil, err
	}
	return results, nil
}

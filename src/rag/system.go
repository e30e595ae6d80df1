// Package rag wires the session store, tool registry and generator into
// the query-answering system behind the API.
package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/elee1766/coursechat/src/agent"
	"github.com/elee1766/coursechat/src/aisdk"
	"github.com/elee1766/coursechat/src/session"
)

// ErrSessionNotFound indicates an explicit operation on a session id this
// system never issued.
var ErrSessionNotFound = errors.New("session not found")

// Catalog is the analytics surface of the course store. *storage.DB
// satisfies it.
type Catalog interface {
	CourseCount(ctx context.Context) (int, error)
	CourseTitles(ctx context.Context) ([]string, error)
}

// CourseStats summarizes the ingested catalog.
type CourseStats struct {
	TotalCourses int      `json:"total_courses"`
	CourseTitles []string `json:"course_titles"`
}

// System orchestrates one question-answer cycle per request.
type System struct {
	Generator *agent.Generator
	Sessions  *session.Store
	Catalog   Catalog
	Logger    *slog.Logger
}

// Answer runs a query through the generation loop using the session's
// conversation history, records the new exchange and returns the answer,
// its sources, and the session id (freshly created when none was given).
func (s *System) Answer(ctx context.Context, query, sessionID string) (string, []aisdk.Citation, string, error) {
	if sessionID == "" {
		sessionID = s.Sessions.CreateSession()
	}

	history := s.Sessions.History(sessionID)

	result, err := s.Generator.Generate(ctx, query, history)
	if err != nil {
		return "", nil, sessionID, fmt.Errorf("generation failed: %w", err)
	}

	s.Sessions.AddExchange(sessionID, query, result.Answer)

	s.logger().Debug("query answered",
		"session_id", sessionID,
		"sources", len(result.Citations))

	return result.Answer, result.Citations, sessionID, nil
}

// Analytics reports catalog statistics. CourseTitles is never nil so the
// empty catalog serializes as an empty list.
func (s *System) Analytics(ctx context.Context) (CourseStats, error) {
	count, err := s.Catalog.CourseCount(ctx)
	if err != nil {
		return CourseStats{}, fmt.Errorf("failed to count courses: %w", err)
	}

	titles, err := s.Catalog.CourseTitles(ctx)
	if err != nil {
		return CourseStats{}, fmt.Errorf("failed to list courses: %w", err)
	}
	if titles == nil {
		titles = []string{}
	}

	return CourseStats{TotalCourses: count, CourseTitles: titles}, nil
}

// ClearSession forgets a session's history. Unlike the store's idempotent
// Clear, asking for an untracked id here is an error the API maps to 404.
func (s *System) ClearSession(id string) error {
	if !s.Sessions.Exists(id) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.Sessions.Clear(id)
	return nil
}

func (s *System) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

package tool_search

import (
	"context"
	"fmt"
	"strings"

	"github.com/elee1766/coursechat/src/agent"
	"github.com/elee1766/coursechat/src/aisdk"
	"github.com/elee1766/coursechat/src/storage"
)

// Tool name constant
const Name = "search_course_content"

const searchPrompt = `Search course materials with smart course name matching and lesson filtering. Use the course_title parameter to narrow the search to one course (partial names match) and lesson_number to narrow it to a specific lesson.`

// ContentSearcher is the search backend the tool runs against.
type ContentSearcher interface {
	SearchChunks(ctx context.Context, query, courseName string, lessonNumber *int, limit int) ([]storage.SearchResult, error)
}

// SearchInput represents the input for a course content search
type SearchInput struct {
	Query        string `json:"query" required:"true" description:"What to search for in the course content"`
	CourseTitle  string `json:"course_title,omitempty" description:"Course title to search within (partial matches work)"`
	LessonNumber *int   `json:"lesson_number,omitempty" description:"Specific lesson number to search within"`
}

// SearchOutput carries the formatted result text plus the citations for
// each matched chunk.
type SearchOutput struct {
	text      string
	citations []aisdk.Citation
}

func (o SearchOutput) ToolResultText() string { return o.text }

func (o SearchOutput) ToolCitations() []aisdk.Citation { return o.citations }

// makeSearchHandler creates a typed handler bound to a search backend
func makeSearchHandler(searcher ContentSearcher, maxResults int) func(context.Context, SearchInput) (SearchOutput, error) {
	return func(ctx context.Context, input SearchInput) (SearchOutput, error) {
		results, err := searcher.SearchChunks(ctx, input.Query, input.CourseTitle, input.LessonNumber, maxResults)
		if err != nil {
			return SearchOutput{}, fmt.Errorf("search failed: %v", err)
		}

		if len(results) == 0 {
			return SearchOutput{text: "no results found"}, nil
		}

		var blocks []string
		var citations []aisdk.Citation
		for _, r := range results {
			header := r.CourseTitle
			if r.LessonNumber >= 0 {
				header = fmt.Sprintf("%s - Lesson %d", r.CourseTitle, r.LessonNumber)
			}
			blocks = append(blocks, fmt.Sprintf("[%s]\n%s", header, r.Content))
			citations = append(citations, aisdk.Citation{Text: header, URL: r.LessonLink})
		}

		return SearchOutput{
			text:      strings.Join(blocks, "\n\n"),
			citations: citations,
		}, nil
	}
}

// Tool returns the search_course_content tool definition using GenericTool
func Tool(searcher ContentSearcher, maxResults int) (agent.Tool, error) {
	return agent.NewGenericTool(Name, searchPrompt, makeSearchHandler(searcher, maxResults))
}

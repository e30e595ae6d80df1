package tool_outline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/elee1766/coursechat/src/agent"
	"github.com/elee1766/coursechat/src/aisdk"
	"github.com/elee1766/coursechat/src/storage"
)

// Tool name constant
const Name = "get_course_outline"

const outlinePrompt = `Get the complete outline of a course: its title, link, and the full list of numbered lessons. Use this for questions about course structure rather than course content. The course_title parameter accepts partial names.`

// OutlineProvider resolves a course name to its full outline.
type OutlineProvider interface {
	GetCourseOutline(ctx context.Context, name string) (*storage.Course, error)
}

// OutlineInput represents the input for a course outline lookup
type OutlineInput struct {
	CourseTitle string `json:"course_title" required:"true" description:"Course title to look up (partial matches work)"`
}

// OutlineOutput renders the outline as text and cites the course link.
type OutlineOutput struct {
	text      string
	citations []aisdk.Citation
}

func (o OutlineOutput) ToolResultText() string { return o.text }

func (o OutlineOutput) ToolCitations() []aisdk.Citation { return o.citations }

// makeOutlineHandler creates a typed handler bound to an outline provider
func makeOutlineHandler(provider OutlineProvider) func(context.Context, OutlineInput) (OutlineOutput, error) {
	return func(ctx context.Context, input OutlineInput) (OutlineOutput, error) {
		course, err := provider.GetCourseOutline(ctx, input.CourseTitle)
		if err != nil {
			if errors.Is(err, storage.ErrCourseNotFound) {
				return OutlineOutput{text: fmt.Sprintf("no course found matching '%s'", input.CourseTitle)}, nil
			}
			return OutlineOutput{}, fmt.Errorf("outline lookup failed: %v", err)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Course: %s\n", course.Title)
		if course.Link != "" {
			fmt.Fprintf(&b, "Link: %s\n", course.Link)
		}
		if course.Instructor != "" {
			fmt.Fprintf(&b, "Instructor: %s\n", course.Instructor)
		}
		fmt.Fprintf(&b, "Lessons (%d):\n", len(course.Lessons))
		for _, lesson := range course.Lessons {
			fmt.Fprintf(&b, "  %d. %s\n", lesson.Number, lesson.Title)
		}

		out := OutlineOutput{text: strings.TrimRight(b.String(), "\n")}
		if course.Link != "" {
			out.citations = []aisdk.Citation{{Text: course.Title, URL: course.Link}}
		}
		return out, nil
	}
}

// Tool returns the get_course_outline tool definition using GenericTool
func Tool(provider OutlineProvider) (agent.Tool, error) {
	return agent.NewGenericTool(Name, outlinePrompt, makeOutlineHandler(provider))
}

// Package coursetools registers the course material tools on a toolbox.
package coursetools

import (
	"context"

	"github.com/elee1766/coursechat/src/agent"
	"github.com/elee1766/coursechat/src/coursetools/tool_outline"
	"github.com/elee1766/coursechat/src/coursetools/tool_search"
	"github.com/elee1766/coursechat/src/storage"
)

// Tool name constants - re-exported from individual packages
const (
	SearchName  = tool_search.Name
	OutlineName = tool_outline.Name
)

// Backend is the storage surface the course tools need. *storage.DB
// satisfies it.
type Backend interface {
	SearchChunks(ctx context.Context, query, courseName string, lessonNumber *int, limit int) ([]storage.SearchResult, error)
	GetCourseOutline(ctx context.Context, name string) (*storage.Course, error)
}

func SearchTool(backend Backend, maxResults int) (agent.Tool, error) {
	return tool_search.Tool(backend, maxResults)
}

func OutlineTool(backend Backend) (agent.Tool, error) {
	return tool_outline.Tool(backend)
}

// RegisterAll wires both course tools onto the toolbox. Search is
// registered first so it is the first declaration the model sees.
func RegisterAll(toolbox *agent.Toolbox, backend Backend, maxResults int) error {
	search, err := SearchTool(backend, maxResults)
	if err != nil {
		return err
	}
	if err := toolbox.RegisterTool(search); err != nil {
		return err
	}

	outline, err := OutlineTool(backend)
	if err != nil {
		return err
	}
	return toolbox.RegisterTool(outline)
}

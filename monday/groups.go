package monday

import (
	"context"
	"fmt"
	"slices"

	"github.com/leetcs/gomonday/query"
)

// GroupsService handles group operations. Groups are always queried
// through their parent boards.
type GroupsService struct {
	client *Client
}

// GroupQueryOptions controls a groups query.
type GroupQueryOptions struct {
	GroupIDs   []string
	GroupNames []string // client-side title filter; requires title in Fields
	Fields     string   // default "id"
}

// Query returns the groups of the given boards, one record per board with
// the board id and its (optionally filtered) groups.
func (s *GroupsService) Query(ctx context.Context, boardIDs []int64, opts GroupQueryOptions) ([]map[string]any, error) {
	if opts.Fields == "" {
		opts.Fields = "id"
	}

	groupArgs := ""
	if len(opts.GroupIDs) > 0 {
		groupArgs = fmt.Sprintf(" (ids: %s)", query.Value(opts.GroupIDs))
	}
	boardFields := fmt.Sprintf("id groups%s { %s }", groupArgs, opts.Fields)

	boards, err := s.client.Boards.Query(ctx, BoardQueryOptions{
		BoardIDs: boardIDs,
		Fields:   boardFields,
	})
	if err != nil {
		return nil, err
	}

	results := make([]map[string]any, 0, len(boards))
	for _, board := range boards {
		groups := listOf(board, "groups")
		if len(opts.GroupNames) > 0 {
			filtered := groups[:0]
			for _, group := range groups {
				title, _ := group["title"].(string)
				if slices.Contains(opts.GroupNames, title) {
					filtered = append(filtered, group)
				}
			}
			groups = filtered
		}
		results = append(results, map[string]any{
			"id":     board["id"],
			"groups": groups,
		})
	}

	return results, nil
}

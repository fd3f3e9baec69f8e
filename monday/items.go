package monday

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/leetcs/gomonday/pagination"
	"github.com/leetcs/gomonday/query"
)

// itemsPageConcurrency bounds the per-board fan-out in PageAll.
const itemsPageConcurrency = 4

// ItemsService handles item operations.
type ItemsService struct {
	client *Client
}

// ItemQueryOptions controls an items-by-ID query.
type ItemQueryOptions struct {
	Limit            int    // default 25
	Fields           string // default "name"
	Page             int    // default 1
	ExcludeNonactive bool
	NewestFirst      bool
}

// Query returns metadata about the given items, walking result pages until
// an empty page. The API caps ids at 100 per request.
func (s *ItemsService) Query(ctx context.Context, itemIDs []int64, opts ItemQueryOptions) ([]map[string]any, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultPageSize
	}
	if opts.Fields == "" {
		opts.Fields = "name"
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}

	var items []map[string]any
	page := opts.Page

	for {
		args := map[string]any{
			"ids":   itemIDs,
			"limit": opts.Limit,
			"page":  page,
		}
		if opts.ExcludeNonactive {
			args["exclude_nonactive"] = true
		}
		if opts.NewestFirst {
			args["newest_first"] = true
		}
		queryText := query.Build(query.KindQuery, "items", args, opts.Fields)

		resp, err := s.client.Exec(ctx, queryText)
		if err != nil {
			return nil, err
		}
		data, err := checkData(resp)
		if err != nil {
			return nil, err
		}

		current := listOf(data, "items")
		if len(current) == 0 {
			break
		}
		items = append(items, current...)
		page++
	}

	return items, nil
}

// CreateItemOptions holds the optional arguments for Create.
type CreateItemOptions struct {
	ColumnValues           map[string]any
	Fields                 string // default "id"
	GroupID                string
	CreateLabelsIfMissing  bool
	PositionRelativeMethod string // before_at or after_at
	RelativeTo             int64
}

// Create creates a new item on a board.
func (s *ItemsService) Create(ctx context.Context, boardID int64, itemName string, opts CreateItemOptions) (map[string]any, error) {
	if opts.Fields == "" {
		opts.Fields = "id"
	}

	args := map[string]any{
		"board_id":  boardID,
		"item_name": itemName,
	}
	if len(opts.ColumnValues) > 0 {
		args["column_values"] = opts.ColumnValues
	}
	if opts.GroupID != "" {
		args["group_id"] = opts.GroupID
	}
	if opts.CreateLabelsIfMissing {
		args["create_labels_if_missing"] = true
	}
	if opts.PositionRelativeMethod != "" {
		args["position_relative_method"] = query.Raw(opts.PositionRelativeMethod)
	}
	if opts.RelativeTo != 0 {
		args["relative_to"] = opts.RelativeTo
	}

	return s.mutate(ctx, "create_item", args, opts.Fields)
}

// Duplicate duplicates an item, optionally including its updates.
func (s *ItemsService) Duplicate(ctx context.Context, boardID, itemID int64, withUpdates bool, fields string) (map[string]any, error) {
	if fields == "" {
		fields = "id"
	}
	args := map[string]any{
		"board_id":     boardID,
		"item_id":      itemID,
		"with_updates": withUpdates,
	}
	return s.mutate(ctx, "duplicate_item", args, fields)
}

// MoveToGroup moves an item to a group on the same board.
func (s *ItemsService) MoveToGroup(ctx context.Context, itemID int64, groupID, fields string) (map[string]any, error) {
	if fields == "" {
		fields = "id"
	}
	args := map[string]any{
		"item_id":  itemID,
		"group_id": groupID,
	}
	return s.mutate(ctx, "move_item_to_group", args, fields)
}

// MoveToBoard moves an item to a group on another board.
func (s *ItemsService) MoveToBoard(ctx context.Context, itemID, boardID int64, groupID, fields string) (map[string]any, error) {
	if fields == "" {
		fields = "id"
	}
	args := map[string]any{
		"item_id":  itemID,
		"board_id": boardID,
		"group_id": groupID,
	}
	return s.mutate(ctx, "move_item_to_board", args, fields)
}

// Archive archives an item.
func (s *ItemsService) Archive(ctx context.Context, itemID int64, fields string) (map[string]any, error) {
	if fields == "" {
		fields = "id"
	}
	return s.mutate(ctx, "archive_item", map[string]any{"item_id": itemID}, fields)
}

// Delete deletes an item.
func (s *ItemsService) Delete(ctx context.Context, itemID int64, fields string) (map[string]any, error) {
	if fields == "" {
		fields = "id"
	}
	return s.mutate(ctx, "delete_item", map[string]any{"item_id": itemID}, fields)
}

// ClearUpdates clears all updates on an item.
func (s *ItemsService) ClearUpdates(ctx context.Context, itemID int64, fields string) (map[string]any, error) {
	if fields == "" {
		fields = "id"
	}
	return s.mutate(ctx, "clear_item_updates", map[string]any{"item_id": itemID}, fields)
}

// ItemsPageOptions controls the cursor-paginated item listings.
type ItemsPageOptions struct {
	Fields      string // item fields, default "id name"
	QueryParams string // raw items_page query_params value
	Limit       int    // items per page, default 25, API max ~500
}

func (o *ItemsPageOptions) applyDefaults() {
	if o.Fields == "" {
		o.Fields = "id name"
	}
	if o.Limit <= 0 {
		o.Limit = DefaultPageSize
	}
}

// Page returns every item on the given boards, following the pagination
// cursor until the API reports no further pages.
func (s *ItemsService) Page(ctx context.Context, boardIDs []int64, opts ItemsPageOptions) ([]map[string]any, error) {
	opts.applyDefaults()

	pageArgs := map[string]any{"limit": opts.Limit}
	if opts.QueryParams != "" {
		pageArgs["query_params"] = query.Raw(opts.QueryParams)
	}
	fields := fmt.Sprintf("items_page (%s) { cursor items { %s } }", query.Args(pageArgs), opts.Fields)

	var args map[string]any
	if len(boardIDs) > 0 {
		args = map[string]any{"ids": boardIDs}
	}
	queryText := query.Build(query.KindQuery, "boards", args, fields)

	return pagination.Items(ctx, s.client, queryText, opts.Limit)
}

// PageByColumnValues returns a board's items matched by column values,
// following the pagination cursor until exhausted. columns is the raw
// GraphQL columns argument value.
func (s *ItemsService) PageByColumnValues(ctx context.Context, boardID int64, columns string, opts ItemsPageOptions) ([]map[string]any, error) {
	opts.applyDefaults()

	args := map[string]any{
		"board_id": boardID,
		"limit":    opts.Limit,
	}
	if columns != "" {
		args["columns"] = query.Raw(columns)
	}
	fields := fmt.Sprintf("cursor items { %s }", opts.Fields)
	queryText := query.Build(query.KindQuery, "items_page_by_column_values", args, fields)

	return pagination.Items(ctx, s.client, queryText, opts.Limit)
}

// PageAll fetches the items of several boards concurrently, one bounded
// traversal per board. Each traversal keeps its own retry budget; pages
// within a traversal remain strictly sequential.
func (s *ItemsService) PageAll(ctx context.Context, boardIDs []int64, opts ItemsPageOptions) (map[int64][]map[string]any, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(itemsPageConcurrency)

	var mu sync.Mutex
	results := make(map[int64][]map[string]any, len(boardIDs))

	for _, boardID := range boardIDs {
		g.Go(func() error {
			items, err := s.Page(ctx, []int64{boardID}, opts)
			if err != nil {
				return fmt.Errorf("board %d: %w", boardID, err)
			}
			mu.Lock()
			results[boardID] = items
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *ItemsService) mutate(ctx context.Context, operation string, args map[string]any, fields string) (map[string]any, error) {
	queryText := query.Build(query.KindMutation, operation, args, fields)

	resp, err := s.client.Exec(ctx, queryText)
	if err != nil {
		return nil, err
	}
	data, err := checkData(resp)
	if err != nil {
		return nil, err
	}
	return objectOf(data, operation)
}

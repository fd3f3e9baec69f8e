package monday

import (
	"context"
	"fmt"
	"strings"

	"github.com/leetcs/gomonday/pagination"
	"github.com/leetcs/gomonday/query"
)

// BoardsService handles board operations.
type BoardsService struct {
	client *Client
}

// BoardQueryOptions controls a boards query. Zero values fall back to the
// API defaults (all boards, "id name" fields, active state, 25 per page).
type BoardQueryOptions struct {
	BoardIDs      []int64
	Fields        string
	BoardKind     string // all, public, private, share
	OrderBy       string // created_at, used_at
	State         string // all, active, archived, deleted
	WorkspaceIDs  []int64
	Limit         int
	Page          int
	PaginateItems bool // follow nested items_page cursors in Fields
	ItemLimit     int  // items per continuation page
}

func (o *BoardQueryOptions) applyDefaults() {
	if o.Fields == "" {
		o.Fields = "id name"
	}
	if o.State == "" {
		o.State = "active"
	}
	if o.Limit <= 0 {
		o.Limit = DefaultPageSize
	}
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.ItemLimit <= 0 {
		o.ItemLimit = DefaultPageSize
	}
}

// Query returns metadata about one or multiple boards, walking board pages
// until an empty page. With PaginateItems set and an items_page selection
// in Fields, each board's embedded item list is completed by following its
// cursor.
func (s *BoardsService) Query(ctx context.Context, opts BoardQueryOptions) ([]map[string]any, error) {
	opts.applyDefaults()

	wantsItems := strings.Contains(opts.Fields, "items_page")
	if opts.PaginateItems && wantsItems && !strings.Contains(opts.Fields, "cursor") {
		return nil, &QueryFormatError{
			Message: `item pagination requires a cursor in the items_page selection, e.g. "id name items_page { cursor items { id } }"`,
		}
	}

	var boards []map[string]any
	var firstQuery string
	page := opts.Page

	for {
		queryText := s.buildQuery(opts, page)
		if firstQuery == "" {
			firstQuery = queryText
		}

		resp, err := s.client.Exec(ctx, queryText)
		if err != nil {
			return nil, err
		}
		data, err := checkData(resp)
		if err != nil {
			return nil, err
		}

		current := listOf(data, "boards")
		if len(current) == 0 {
			break
		}
		boards = append(boards, current...)
		page++
	}

	if opts.PaginateItems && wantsItems {
		if err := s.paginateItems(ctx, boards, firstQuery, opts.ItemLimit); err != nil {
			return nil, err
		}
	}

	return boards, nil
}

// BoardItemsPageOptions controls an ItemsPage query.
type BoardItemsPageOptions struct {
	BoardIDs    []int64
	ItemFields  string // selection inside items_page, default "items { id name }"
	QueryParams string // raw items_page query_params value
	BoardFields string // extra board-level fields
	Limit       int    // items per page
}

// ItemsPage queries boards for their items, following each board's cursor
// until its item list is complete. The items_page selection is always
// nested within a boards query.
func (s *BoardsService) ItemsPage(ctx context.Context, opts BoardItemsPageOptions) ([]map[string]any, error) {
	if opts.ItemFields == "" {
		opts.ItemFields = "items { id name }"
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultPageSize
	}

	pageArgs := map[string]any{"limit": opts.Limit}
	if opts.QueryParams != "" {
		pageArgs["query_params"] = query.Raw(opts.QueryParams)
	}
	fields := strings.TrimSpace(fmt.Sprintf(
		"%s items_page (%s) { cursor %s }",
		opts.BoardFields, query.Args(pageArgs), opts.ItemFields,
	))

	var args map[string]any
	if len(opts.BoardIDs) > 0 {
		args = map[string]any{"ids": opts.BoardIDs}
	}
	queryText := query.Build(query.KindQuery, "boards", args, fields)

	resp, err := s.client.Exec(ctx, queryText)
	if err != nil {
		return nil, err
	}
	data, err := checkData(resp)
	if err != nil {
		return nil, err
	}

	boards := listOf(data, "boards")
	if err := s.paginateItems(ctx, boards, queryText, opts.Limit); err != nil {
		return nil, err
	}
	return boards, nil
}

// paginateItems completes each board's embedded items_page in place: any
// board whose first page came back with a cursor has the remaining pages
// fetched and appended, then the cursor key is removed.
func (s *BoardsService) paginateItems(ctx context.Context, boards []map[string]any, queryText string, limit int) error {
	for _, board := range boards {
		page, ok := board["items_page"].(map[string]any)
		if !ok {
			continue
		}
		if cursor, _ := page["cursor"].(string); cursor != "" {
			more, err := pagination.ItemsAfter(ctx, s.client, queryText, limit, cursor)
			if err != nil {
				return err
			}
			existing, _ := page["items"].([]any)
			for _, item := range more {
				existing = append(existing, item)
			}
			page["items"] = existing
		}
		delete(page, "cursor")
	}
	return nil
}

// CreateBoardOptions holds the optional arguments for Create.
type CreateBoardOptions struct {
	Kind              string // board_kind enum
	Description       string
	OwnerIDs          []int64
	SubscriberIDs     []int64
	SubscriberTeamIDs []int64
	FolderID          int64
	TemplateID        int64
	WorkspaceID       int64
	Fields            string // default "id"
}

// Create creates a new board.
func (s *BoardsService) Create(ctx context.Context, name string, opts CreateBoardOptions) (map[string]any, error) {
	if opts.Fields == "" {
		opts.Fields = "id"
	}

	args := map[string]any{"board_name": name}
	if opts.Kind != "" {
		args["board_kind"] = query.Raw(opts.Kind)
	}
	if opts.Description != "" {
		args["description"] = opts.Description
	}
	if len(opts.OwnerIDs) > 0 {
		args["board_owner_ids"] = opts.OwnerIDs
	}
	if len(opts.SubscriberIDs) > 0 {
		args["board_subscriber_ids"] = opts.SubscriberIDs
	}
	if len(opts.SubscriberTeamIDs) > 0 {
		args["board_subscriber_teams_ids"] = opts.SubscriberTeamIDs
	}
	if opts.FolderID != 0 {
		args["folder_id"] = opts.FolderID
	}
	if opts.TemplateID != 0 {
		args["template_id"] = opts.TemplateID
	}
	if opts.WorkspaceID != 0 {
		args["workspace_id"] = opts.WorkspaceID
	}

	return s.mutate(ctx, "create_board", args, opts.Fields)
}

// DuplicateBoardOptions holds the optional arguments for Duplicate.
type DuplicateBoardOptions struct {
	Name            string
	Type            string // duplicate_type enum, default duplicate_board_with_structure
	FolderID        int64
	KeepSubscribers bool
	WorkspaceID     int64
	Fields          string // default "board { id }"
}

// Duplicate duplicates a board.
func (s *BoardsService) Duplicate(ctx context.Context, boardID int64, opts DuplicateBoardOptions) (map[string]any, error) {
	if opts.Type == "" {
		opts.Type = "duplicate_board_with_structure"
	}
	if opts.Fields == "" {
		opts.Fields = "board { id }"
	}

	args := map[string]any{
		"board_id":         boardID,
		"duplicate_type":   query.Raw(opts.Type),
		"keep_subscribers": opts.KeepSubscribers,
	}
	if opts.Name != "" {
		args["board_name"] = opts.Name
	}
	if opts.FolderID != 0 {
		args["folder_id"] = opts.FolderID
	}
	if opts.WorkspaceID != 0 {
		args["workspace_id"] = opts.WorkspaceID
	}

	return s.mutate(ctx, "duplicate_board", args, opts.Fields)
}

// Update updates one attribute (communication, description or name) of a
// board and returns the API's raw confirmation value.
func (s *BoardsService) Update(ctx context.Context, boardID int64, attribute, newValue string) (string, error) {
	args := map[string]any{
		"board_id":        boardID,
		"board_attribute": query.Raw(attribute),
		"new_value":       newValue,
	}
	queryText := query.Build(query.KindMutation, "update_board", args, "")

	resp, err := s.client.Exec(ctx, queryText)
	if err != nil {
		return "", err
	}
	data, err := checkData(resp)
	if err != nil {
		return "", err
	}
	result, _ := data["update_board"].(string)
	return result, nil
}

// Delete deletes a board.
func (s *BoardsService) Delete(ctx context.Context, boardID int64) (map[string]any, error) {
	return s.mutate(ctx, "delete_board", map[string]any{"board_id": boardID}, "id")
}

func (s *BoardsService) mutate(ctx context.Context, operation string, args map[string]any, fields string) (map[string]any, error) {
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

func (s *BoardsService) buildQuery(opts BoardQueryOptions, page int) string {
	args := map[string]any{
		"limit": opts.Limit,
		"page":  page,
		"state": query.Raw(opts.State),
	}
	if len(opts.BoardIDs) > 0 {
		args["ids"] = opts.BoardIDs
	}
	if len(opts.WorkspaceIDs) > 0 {
		args["workspace_ids"] = opts.WorkspaceIDs
	}
	if opts.BoardKind != "" && opts.BoardKind != "all" {
		args["board_kind"] = query.Raw(opts.BoardKind)
	}
	if opts.OrderBy != "" {
		args["order_by"] = query.Raw(opts.OrderBy)
	}
	return query.Build(query.KindQuery, "boards", args, opts.Fields)
}

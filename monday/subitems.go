package monday

import (
	"context"
	"fmt"
)

// SubitemsService handles subitem operations. Subitems are regular items
// that live on a hidden subitem board and are reached through their parent
// item.
type SubitemsService struct {
	client *Client
}

// Query returns the given parent items with their subitems attached.
func (s *SubitemsService) Query(ctx context.Context, itemIDs []int64, fields string) ([]map[string]any, error) {
	if fields == "" {
		fields = "id"
	}
	itemFields := fmt.Sprintf("id subitems { %s }", fields)
	return s.client.Items.Query(ctx, itemIDs, ItemQueryOptions{Fields: itemFields})
}

// CreateSubitemOptions holds the optional arguments for Create.
type CreateSubitemOptions struct {
	ColumnValues          map[string]any
	CreateLabelsIfMissing bool
	Fields                string // default "id"
}

// Create creates a subitem under a parent item.
func (s *SubitemsService) Create(ctx context.Context, parentItemID int64, itemName string, opts CreateSubitemOptions) (map[string]any, error) {
	if opts.Fields == "" {
		opts.Fields = "id"
	}

	args := map[string]any{
		"parent_item_id": parentItemID,
		"item_name":      itemName,
	}
	if len(opts.ColumnValues) > 0 {
		args["column_values"] = opts.ColumnValues
	}
	if opts.CreateLabelsIfMissing {
		args["create_labels_if_missing"] = true
	}

	return s.client.Items.mutate(ctx, "create_subitem", args, opts.Fields)
}

// Package pagination drives cursor-based paginated requests against the
// monday.com API and extracts items and cursors from response envelopes.
package pagination

import (
	"context"
	"sort"

	"github.com/leetcs/gomonday/query"
)

// Requester executes one governed GraphQL request. *monday.Client
// satisfies it; tests supply fakes.
type Requester interface {
	Exec(ctx context.Context, query string) (map[string]any, error)
}

// Items runs queryText and follows the pagination cursor until the API
// reports no further pages, returning every page's items in page order.
//
// Governed faults abort the traversal and are returned as-is with any
// partial accumulator discarded: a partial item set without a resumable
// cursor is not safely continuable, so callers retry the whole traversal.
func Items(ctx context.Context, api Requester, queryText string, limit int) ([]map[string]any, error) {
	return ItemsAfter(ctx, api, queryText, limit, "")
}

// ItemsAfter is Items starting from a known cursor. An empty cursor means
// the traversal starts with queryText verbatim; otherwise the first
// request is already a continuation built from queryText's item selection.
func ItemsAfter(ctx context.Context, api Requester, queryText string, limit int, cursor string) ([]map[string]any, error) {
	var combined []map[string]any
	start := cursor == ""

	for {
		var pageQuery string
		if start {
			pageQuery = queryText
			start = false
		} else {
			selection, err := query.ItemsSelection(queryText)
			if err != nil {
				return nil, &Error{Message: "failed to extract items selection: " + err.Error()}
			}
			pageQuery = query.NextPage(selection, limit, cursor)
		}

		resp, err := api.Exec(ctx, pageQuery)
		if err != nil {
			return nil, err
		}

		items, itemsFound := ExtractItems(resp)
		next, cursorFound := ExtractCursor(resp)

		// A page with no items list is only acceptable when the response
		// carries an explicit null cursor terminating the traversal.
		if !itemsFound && !(cursorFound && next == "") {
			return nil, &Error{Message: "no items found in response"}
		}

		combined = append(combined, items...)

		if next == "" {
			return combined, nil
		}
		cursor = next
	}
}

// ExtractItems concatenates every "items" list found at any depth of a
// parsed response. The boolean reports whether at least one items list was
// present, distinguishing an empty page from a page with no items at all.
//
// Map keys are walked in sorted order so results are deterministic; sibling
// items lists almost always live in one JSON array (one per board), where
// document order is preserved.
func ExtractItems(data any) ([]map[string]any, bool) {
	var items []map[string]any
	found := false

	switch v := data.(type) {
	case map[string]any:
		for _, k := range sortedKeys(v) {
			if k == "items" {
				if list, ok := v[k].([]any); ok {
					found = true
					for _, entry := range list {
						if m, ok := entry.(map[string]any); ok {
							items = append(items, m)
						}
					}
					continue
				}
			}
			sub, subFound := ExtractItems(v[k])
			items = append(items, sub...)
			found = found || subFound
		}
	case []any:
		for _, entry := range v {
			sub, subFound := ExtractItems(entry)
			items = append(items, sub...)
			found = found || subFound
		}
	}

	return items, found
}

// ExtractCursor returns the first "cursor" value found at any depth. The
// boolean reports whether a cursor key was present at all; a present but
// null cursor comes back as ("", true), the provider's explicit
// end-of-traversal marker.
func ExtractCursor(data any) (string, bool) {
	switch v := data.(type) {
	case map[string]any:
		if raw, ok := v["cursor"]; ok {
			if s, ok := raw.(string); ok {
				return s, true
			}
			return "", true
		}
		for _, k := range sortedKeys(v) {
			if s, ok := ExtractCursor(v[k]); ok {
				return s, true
			}
		}
	case []any:
		for _, entry := range v {
			if s, ok := ExtractCursor(entry); ok {
				return s, true
			}
		}
	}
	return "", false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

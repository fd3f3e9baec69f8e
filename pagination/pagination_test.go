package pagination

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI replays scripted envelopes and records every query it receives.
type fakeAPI struct {
	responses []string
	errs      []error
	queries   []string
}

func (f *fakeAPI) Exec(_ context.Context, query string) (map[string]any, error) {
	idx := len(f.queries)
	f.queries = append(f.queries, query)

	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	var resp map[string]any
	if err := json.Unmarshal([]byte(f.responses[idx]), &resp); err != nil {
		panic(err)
	}
	return resp, nil
}

const boardItemsQuery = `query { boards (ids: [123]) { items_page (limit: 25) { cursor items { id } } } }`

func TestItemsHappyPath(t *testing.T) {
	api := &fakeAPI{responses: []string{
		`{"data": {"boards": [{"items_page": {"cursor": "abc", "items": [{"id": "1"}, {"id": "2"}]}}]}}`,
		`{"data": {"next_items_page": {"cursor": null, "items": [{"id": "3"}]}}}`,
	}}

	items, err := Items(context.Background(), api, boardItemsQuery, 25)
	require.NoError(t, err)
	require.Len(t, api.queries, 2)

	// First request is the caller's query verbatim, the second a
	// continuation carrying the returned cursor and the item selection.
	assert.Equal(t, boardItemsQuery, api.queries[0])
	assert.Contains(t, api.queries[1], "next_items_page")
	assert.Contains(t, api.queries[1], `cursor: "abc"`)
	assert.Contains(t, api.queries[1], "items { id }")

	require.Len(t, items, 3)
	assert.Equal(t, "1", items[0]["id"])
	assert.Equal(t, "2", items[1]["id"])
	assert.Equal(t, "3", items[2]["id"])
}

func TestItemsEmptyFirstPageWithNullCursor(t *testing.T) {
	api := &fakeAPI{responses: []string{
		`{"data": {"boards": [{"items_page": {"cursor": null, "items": []}}]}}`,
	}}

	items, err := Items(context.Background(), api, boardItemsQuery, 25)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Len(t, api.queries, 1)
}

func TestItemsNoItemsAndNoCursorIsProtocolViolation(t *testing.T) {
	api := &fakeAPI{responses: []string{
		`{"data": {"boards": [{"id": "123"}]}}`,
	}}

	_, err := Items(context.Background(), api, boardItemsQuery, 25)
	require.Error(t, err)

	var pagErr *Error
	require.ErrorAs(t, err, &pagErr)
	assert.Contains(t, pagErr.Message, "no items")
}

func TestItemsMalformedQueryFailsBeforeSecondRequest(t *testing.T) {
	malformed := `query { boards { items_page { cursor items { id } }`
	api := &fakeAPI{responses: []string{
		`{"data": {"boards": [{"items_page": {"cursor": "abc", "items": [{"id": "1"}]}}]}}`,
	}}

	_, err := Items(context.Background(), api, malformed, 25)
	require.Error(t, err)
	assert.Len(t, api.queries, 1)

	var pagErr *Error
	require.ErrorAs(t, err, &pagErr)
}

func TestItemsFaultMidPaginationDiscardsPartials(t *testing.T) {
	faultErr := errors.New("complexity limit exceeded")
	api := &fakeAPI{
		responses: []string{
			`{"data": {"boards": [{"items_page": {"cursor": "abc", "items": [{"id": "1"}]}}]}}`,
			"",
		},
		errs: []error{nil, faultErr},
	}

	items, err := Items(context.Background(), api, boardItemsQuery, 25)
	require.ErrorIs(t, err, faultErr)
	assert.Nil(t, items)
	assert.Len(t, api.queries, 2)
}

func TestItemsAfterStartsWithContinuation(t *testing.T) {
	api := &fakeAPI{responses: []string{
		`{"data": {"next_items_page": {"cursor": null, "items": [{"id": "9"}]}}}`,
	}}

	items, err := ItemsAfter(context.Background(), api, boardItemsQuery, 10, "resume-token")
	require.NoError(t, err)
	require.Len(t, api.queries, 1)
	assert.Contains(t, api.queries[0], `cursor: "resume-token"`)
	assert.Contains(t, api.queries[0], "limit: 10")
	require.Len(t, items, 1)
	assert.Equal(t, "9", items[0]["id"])
}

func TestExtractItems(t *testing.T) {
	t.Run("union across depths in encounter order", func(t *testing.T) {
		var data map[string]any
		require.NoError(t, json.Unmarshal([]byte(`{
			"data": {
				"boards": [
					{"items_page": {"items": [{"id": "1"}, {"id": "2"}]}},
					{"items_page": {"items": [{"id": "3"}]}}
				]
			}
		}`), &data))

		items, found := ExtractItems(data)
		require.True(t, found)
		require.Len(t, items, 3)
		assert.Equal(t, "1", items[0]["id"])
		assert.Equal(t, "2", items[1]["id"])
		assert.Equal(t, "3", items[2]["id"])
	})

	t.Run("empty list is found", func(t *testing.T) {
		items, found := ExtractItems(map[string]any{"items": []any{}})
		assert.True(t, found)
		assert.Empty(t, items)
	})

	t.Run("items key with non-list value is not a collection", func(t *testing.T) {
		_, found := ExtractItems(map[string]any{"items": "nope"})
		assert.False(t, found)
	})

	t.Run("absent", func(t *testing.T) {
		_, found := ExtractItems(map[string]any{"boards": []any{}})
		assert.False(t, found)
	})
}

func TestExtractCursor(t *testing.T) {
	t.Run("nested cursor", func(t *testing.T) {
		var data map[string]any
		require.NoError(t, json.Unmarshal([]byte(`{"data": {"boards": [{"items_page": {"cursor": "abc"}}]}}`), &data))

		cursor, found := ExtractCursor(data)
		assert.True(t, found)
		assert.Equal(t, "abc", cursor)
	})

	t.Run("explicit null cursor", func(t *testing.T) {
		var data map[string]any
		require.NoError(t, json.Unmarshal([]byte(`{"data": {"items_page": {"cursor": null}}}`), &data))

		cursor, found := ExtractCursor(data)
		assert.True(t, found)
		assert.Empty(t, cursor)
	})

	t.Run("missing cursor", func(t *testing.T) {
		_, found := ExtractCursor(map[string]any{"data": map[string]any{}})
		assert.False(t, found)
	})
}

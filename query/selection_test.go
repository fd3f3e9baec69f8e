package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemsSelection(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    string
		wantErr bool
	}{
		{
			name:  "nested under boards and items_page",
			query: `query { boards (ids: [123]) { items_page (limit: 25) { cursor items { id name } } } }`,
			want:  "items { id name }",
		},
		{
			name:  "bare items_page",
			query: `query { items_page_by_column_values (board_id: 1, limit: 25) { cursor items { id } } }`,
			want:  "items { id }",
		},
		{
			name:  "cursor stripped from inside items",
			query: `query { boards { items_page { items { cursor id name } } } }`,
			want:  "items { id name }",
		},
		{
			name:  "nested sub-selections survive",
			query: `query { boards { items_page { cursor items { id column_values { id text } } } } }`,
			want:  "items { id column_values { id text } }",
		},
		{
			name:    "no items selection",
			query:   `query { boards { id name } }`,
			wantErr: true,
		},
		{
			name:    "unbalanced braces",
			query:   `query { boards { items_page { cursor items { id } }`,
			wantErr: true,
		},
		{
			name:    "not a query at all",
			query:   `{{{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ItemsSelection(tt.query)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextPageRoundTrip(t *testing.T) {
	original := `query { boards (ids: [123]) { items_page (limit: 25) { cursor items { id name } } } }`

	selection, err := ItemsSelection(original)
	require.NoError(t, err)

	continuation := NextPage(selection, 25, "abc")
	assert.Contains(t, continuation, "next_items_page")
	assert.Contains(t, continuation, `cursor: "abc"`)
	assert.Contains(t, continuation, "limit: 25")

	// The continuation must itself be a parseable query carrying the same
	// item selection.
	again, err := ItemsSelection(continuation)
	require.NoError(t, err)
	assert.Equal(t, selection, again)
}

func TestNextPageEscapesCursor(t *testing.T) {
	continuation := NextPage("items { id }", 10, `cur"sor`)
	assert.Contains(t, continuation, `cursor: "cur\"sor"`)

	_, err := ItemsSelection(continuation)
	require.NoError(t, err)
}

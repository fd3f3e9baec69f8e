package monday

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupsQuery(t *testing.T) {
	t.Run("groups per board", func(t *testing.T) {
		server, queries := recordingServer(t,
			`{"data": {"boards": [{"id": "123", "groups": [{"id": "topics"}, {"id": "done"}]}]}}`,
			`{"data": {"boards": []}}`,
		)
		client := newTestClient(t, server.URL)

		results, err := client.Groups.Query(context.Background(), []int64{123}, GroupQueryOptions{})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "123", results[0]["id"])
		assert.Len(t, results[0]["groups"], 2)

		assert.Contains(t, (*queries)[0], "id groups { id }")
	})

	t.Run("group ids narrow the selection", func(t *testing.T) {
		server, queries := recordingServer(t,
			`{"data": {"boards": [{"id": "123", "groups": [{"id": "topics"}]}]}}`,
			`{"data": {"boards": []}}`,
		)
		client := newTestClient(t, server.URL)

		_, err := client.Groups.Query(context.Background(), []int64{123}, GroupQueryOptions{
			GroupIDs: []string{"topics"},
		})
		require.NoError(t, err)
		assert.Contains(t, (*queries)[0], `groups (ids: ["topics"])`)
	})

	t.Run("group names filter client-side", func(t *testing.T) {
		server, _ := scriptedServer(t,
			`{"data": {"boards": [{"id": "123", "groups": [{"id": "g1", "title": "Topics"}, {"id": "g2", "title": "Done"}]}]}}`,
			`{"data": {"boards": []}}`,
		)
		client := newTestClient(t, server.URL)

		results, err := client.Groups.Query(context.Background(), []int64{123}, GroupQueryOptions{
			GroupNames: []string{"Done"},
			Fields:     "id title",
		})
		require.NoError(t, err)
		require.Len(t, results, 1)

		groups := results[0]["groups"].([]map[string]any)
		require.Len(t, groups, 1)
		assert.Equal(t, "g2", groups[0]["id"])
	})
}

func TestSubitemsQuery(t *testing.T) {
	server, queries := recordingServer(t,
		`{"data": {"items": [{"id": "1", "subitems": [{"id": "10"}]}]}}`,
		`{"data": {"items": []}}`,
	)
	client := newTestClient(t, server.URL)

	items, err := client.Subitems.Query(context.Background(), []int64{1}, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Contains(t, (*queries)[0], "id subitems { id }")
}

func TestSubitemsCreate(t *testing.T) {
	server, queries := recordingServer(t, `{"data": {"create_subitem": {"id": "10"}}}`)
	client := newTestClient(t, server.URL)

	subitem, err := client.Subitems.Create(context.Background(), 1, "Child", CreateSubitemOptions{})
	require.NoError(t, err)
	assert.Equal(t, "10", subitem["id"])
	assert.Contains(t, (*queries)[0], "mutation { create_subitem")
	assert.Contains(t, (*queries)[0], "parent_item_id: 1")
}

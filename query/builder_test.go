package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		operation string
		args      map[string]any
		fields    string
		want      string
	}{
		{
			name:      "query with args and fields",
			kind:      KindQuery,
			operation: "boards",
			args:      map[string]any{"ids": []int64{1, 2}, "limit": 25},
			fields:    "id name",
			want:      "query { boards (ids: [1, 2], limit: 25) { id name } }",
		},
		{
			name:      "mutation without fields",
			kind:      KindMutation,
			operation: "update_board",
			args:      map[string]any{"board_id": int64(7), "new_value": "x"},
			want:      `mutation { update_board (board_id: 7, new_value: "x") }`,
		},
		{
			name:      "no args",
			kind:      KindQuery,
			operation: "boards",
			fields:    "id",
			want:      "query { boards { id } }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.kind, tt.operation, tt.args, tt.fields))
		})
	}
}

func TestArgs(t *testing.T) {
	t.Run("sorted and nil-skipping", func(t *testing.T) {
		got := Args(map[string]any{
			"zeta":  1,
			"alpha": "a",
			"nil":   nil,
		})
		assert.Equal(t, `alpha: "a", zeta: 1`, got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Args(nil))
	})
}

func TestValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string quoted", `hello "world"`, `"hello \"world\""`},
		{"raw enum passes through", Raw("private"), "private"},
		{"bool", true, "true"},
		{"int64", int64(42), "42"},
		{"float", 1.5, "1.5"},
		{"int64 list", []int64{1, 2, 3}, "[1, 2, 3]"},
		{"string list", []string{"a", "b"}, `["a", "b"]`},
		{"mixed list", []any{int64(1), "a"}, `[1, "a"]`},
		{"column values as quoted JSON", map[string]any{"status": "Done"}, `"{\"status\":\"Done\"}"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Value(tt.in))
		})
	}
}

// Package query composes monday.com GraphQL query text and extracts
// selection sets from existing queries for cursor continuation.
package query

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind is the GraphQL operation kind.
type Kind string

// Operation kinds.
const (
	KindQuery    Kind = "query"
	KindMutation Kind = "mutation"
)

// Raw is an argument value emitted verbatim, without quoting. Use it for
// enum values (board_kind: private) and pre-rendered lists.
type Raw string

// Build renders a single-operation GraphQL document.
func Build(kind Kind, operation string, args map[string]any, fields string) string {
	argsStr := Args(args)
	if argsStr != "" {
		argsStr = " (" + argsStr + ")"
	}
	if fields == "" {
		return fmt.Sprintf("%s { %s%s }", kind, operation, argsStr)
	}
	return fmt.Sprintf("%s { %s%s { %s } }", kind, operation, argsStr, fields)
}

// Args renders an argument list in deterministic (sorted) key order,
// skipping nil values.
func Args(args map[string]any) string {
	keys := make([]string, 0, len(args))
	for k, v := range args {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+Value(args[k]))
	}
	return strings.Join(parts, ", ")
}

// Value renders one argument value as a GraphQL literal. Strings are
// quoted, Raw values pass through, maps become quoted JSON (the shape
// monday.com expects for column_values).
func Value(v any) string {
	switch t := v.(type) {
	case Raw:
		return string(t)
	case string:
		return strconv.Quote(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []int64:
		parts := make([]string, len(t))
		for i, n := range t {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []string:
		parts := make([]string, len(t))
		for i, s := range t {
			parts[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = Value(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		encoded, err := json.Marshal(t)
		if err != nil {
			return strconv.Quote(fmt.Sprint(t))
		}
		return strconv.Quote(string(encoded))
	default:
		return fmt.Sprint(t)
	}
}

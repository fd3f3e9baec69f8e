package query

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// ItemsSelection parses queryText and returns the items selection set as
// text, e.g. "items { id name }", with any cursor fields stripped out.
// Continuation queries re-request item fields only; the cursor is
// requested at the wrapper level.
//
// The query is parsed into a real GraphQL document, so unbalanced braces
// or a missing items field surface here rather than as a malformed
// follow-up request.
func ItemsSelection(queryText string) (string, error) {
	doc, parseErr := parser.ParseQuery(&ast.Source{Name: "query", Input: queryText})
	if parseErr != nil {
		return "", fmt.Errorf("failed to parse query: %w", parseErr)
	}

	for _, op := range doc.Operations {
		if field := findField(op.SelectionSet, "items"); field != nil {
			var b strings.Builder
			writeField(&b, field)
			return b.String(), nil
		}
	}

	return "", fmt.Errorf("no items selection found in query")
}

// NextPage renders the continuation query that resumes a paginated items
// traversal from cursor, re-embedding the original item selection set.
func NextPage(selection string, limit int, cursor string) string {
	return fmt.Sprintf("query { next_items_page (limit: %d, cursor: %q) { cursor %s } }", limit, cursor, selection)
}

// findField depth-first searches a selection set for the first field with
// the given name.
func findField(set ast.SelectionSet, name string) *ast.Field {
	for _, sel := range set {
		field, ok := sel.(*ast.Field)
		if !ok {
			continue
		}
		if field.Name == name {
			return field
		}
		if nested := findField(field.SelectionSet, name); nested != nil {
			return nested
		}
	}
	return nil
}

// writeField serializes a field and its sub-selections back to GraphQL
// text, dropping any cursor fields.
func writeField(b *strings.Builder, field *ast.Field) {
	if field.Alias != "" && field.Alias != field.Name {
		b.WriteString(field.Alias)
		b.WriteString(": ")
	}
	b.WriteString(field.Name)

	if len(field.Arguments) > 0 {
		b.WriteString(" (")
		for i, arg := range field.Arguments {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.Name)
			b.WriteString(": ")
			b.WriteString(arg.Value.String())
		}
		b.WriteString(")")
	}

	children := make([]*ast.Field, 0, len(field.SelectionSet))
	for _, sel := range field.SelectionSet {
		child, ok := sel.(*ast.Field)
		if !ok || child.Name == "cursor" {
			continue
		}
		children = append(children, child)
	}
	if len(children) == 0 {
		return
	}

	b.WriteString(" {")
	for _, child := range children {
		b.WriteString(" ")
		writeField(b, child)
	}
	b.WriteString(" }")
}

// Package filter compiles boolean expressions and evaluates them against
// monday.com item records, for narrowing paginated results client-side.
package filter

import (
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled item filter expression.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into an executable filter. Item fields
// are available as top-level variables; see helperFunctions for the
// built-in helpers.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(), // item fields are caller-chosen
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against one item record.
func (f *Filter) Match(item map[string]any) (bool, error) {
	env := make(map[string]any, len(item)+16)
	for k, v := range helperFunctions() {
		env[k] = v
	}
	for k, v := range item {
		env[k] = v
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, Err: err}
	}
	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{Expression: f.expression, Err: nil}
	}
	return matched, nil
}

// Apply returns the items matching the filter, in input order.
func (f *Filter) Apply(items []map[string]any) ([]map[string]any, error) {
	matched := make([]map[string]any, 0, len(items))
	for _, item := range items {
		ok, err := f.Match(item)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// helperFunctions are the helpers available inside expressions.
func helperFunctions() map[string]any {
	return map[string]any{
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"now":   time.Now,
		"parseDate": func(dateStr string) time.Time {
			t, _ := time.Parse("2006-01-02", dateStr)
			return t
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
	}
}

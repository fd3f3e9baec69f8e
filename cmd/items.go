package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leetcs/gomonday/filter"
	"github.com/leetcs/gomonday/monday"
)

var (
	boardID    int64
	itemFields string
)

// itemsCmd represents the items command
var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List the items on a board",
	Long: `List every item on a board, following pagination cursors until the
board is exhausted. Results can be narrowed with a filter expression
evaluated against the returned item fields, e.g.:

  gomonday items --board 1234567890 --filter 'contains(name, "urgent")'`,
	RunE: runItems,
}

func init() {
	itemsCmd.Flags().Int64Var(&boardID, "board", 0, "board ID to list items from (required)")
	itemsCmd.Flags().StringVar(&itemFields, "fields", "id name", "item fields to request")
	itemsCmd.Flags().IntVar(&pageSize, "limit", 0, "items per page (default from config)")
	itemsCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	itemsCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	itemsCmd.MarkFlagRequired("board")
}

func runItems(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	limit := pageSize
	if limit <= 0 {
		limit = cfg.Defaults.PageSize
	}

	items, err := client.Items.Page(ctx, []int64{boardID}, monday.ItemsPageOptions{
		Fields: itemFields,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	expression, err := getFilterExpression()
	if err != nil {
		return err
	}
	if expression != "" {
		f, err := filter.Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		items, err = f.Apply(items)
		if err != nil {
			return err
		}
	}

	if len(items) == 0 {
		fmt.Println("No items found.")
		return nil
	}

	fmt.Printf("\nFound %d items:\n", len(items))
	fmt.Println(strings.Repeat("-", 60))
	for _, item := range items {
		fmt.Printf("• %v", item["name"])
		if id, ok := item["id"]; ok {
			fmt.Printf(" (id: %v)", id)
		}
		fmt.Println()
	}

	return nil
}

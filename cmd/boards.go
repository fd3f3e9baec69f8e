package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leetcs/gomonday/monday"
)

var (
	boardKind   string
	boardFields string
)

// boardsCmd represents the boards command
var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List boards",
	Long:  `List the boards visible to the configured API key.`,
	RunE:  runBoards,
}

func init() {
	boardsCmd.Flags().StringVar(&boardKind, "kind", "all", "board kind to list (all/public/private/share)")
	boardsCmd.Flags().StringVar(&boardFields, "fields", "id name state", "board fields to request")
}

func runBoards(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	boards, err := client.Boards.Query(ctx, monday.BoardQueryOptions{
		Fields:    boardFields,
		BoardKind: boardKind,
	})
	if err != nil {
		return err
	}

	if len(boards) == 0 {
		fmt.Println("No boards found.")
		return nil
	}

	fmt.Printf("\nFound %d boards:\n", len(boards))
	fmt.Println(strings.Repeat("-", 60))
	for _, board := range boards {
		fmt.Printf("• %v", board["name"])
		if id, ok := board["id"]; ok {
			fmt.Printf(" (id: %v)", id)
		}
		fmt.Println()
	}

	return nil
}

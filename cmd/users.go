package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leetcs/gomonday/monday"
)

var (
	userKind   string
	userFields string
)

// usersCmd represents the users command
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users",
	Long:  `List the users of the account, deduplicated across pages.`,
	RunE:  runUsers,
}

func init() {
	usersCmd.Flags().StringVar(&userKind, "kind", "all", "user kind to list (all/guests/non_guests/non_pending)")
	usersCmd.Flags().StringVar(&userFields, "fields", "id name email", "user fields to request")
}

func runUsers(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	users, err := client.Users.Query(ctx, monday.UserQueryOptions{
		Kind:   userKind,
		Fields: userFields,
	})
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	fmt.Printf("\nFound %d users:\n", len(users))
	fmt.Println(strings.Repeat("-", 60))
	for _, user := range users {
		fmt.Printf("• %v", user["name"])
		if email, ok := user["email"]; ok {
			fmt.Printf(" <%v>", email)
		}
		fmt.Println()
	}

	return nil
}

package monday

import (
	"context"
	"fmt"
	"reflect"

	"github.com/leetcs/gomonday/query"
)

// defaultUserPageSize is the API default page size for user listings.
const defaultUserPageSize = 50

// UsersService handles user operations.
type UsersService struct {
	client *Client
}

// UserQueryOptions controls a users query.
type UserQueryOptions struct {
	Emails      []string
	IDs         []int64
	Name        string // fuzzy name search
	Kind        string // all, guests, non_guests, non_pending
	NewestFirst bool
	NonActive   bool
	Limit       int // default 50
	Page        int // default 1
	SinglePage  bool
	Fields      string // default "id"
}

// Query returns metadata about one or multiple users.
//
// The users endpoint pages by a numeric page index rather than a cursor.
// The loop stops on an empty page, a page shorter than the requested
// limit, or a page identical to the previous one (the API has been seen
// repeating the last page instead of returning an empty one). The combined
// list is deduplicated by id, preserving first-seen order.
func (s *UsersService) Query(ctx context.Context, opts UserQueryOptions) ([]map[string]any, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultUserPageSize
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.Fields == "" {
		opts.Fields = "id"
	}

	var users []map[string]any
	var lastPage []map[string]any
	page := opts.Page

	for {
		queryText := s.buildQuery(opts, page)

		resp, err := s.client.Exec(ctx, queryText)
		if err != nil {
			return nil, err
		}
		data, err := checkData(resp)
		if err != nil {
			return nil, err
		}

		current := listOf(data, "users")
		if len(current) == 0 {
			break
		}
		if reflect.DeepEqual(current, lastPage) {
			s.client.logger.Debug().Int("page", page).Msg("Received duplicate page of users, stopping pagination")
			break
		}

		users = append(users, current...)
		lastPage = current

		if len(current) < opts.Limit {
			s.client.logger.Debug().Int("page", page).Msg("Received fewer users than limit, reached last page")
			break
		}
		if opts.SinglePage {
			break
		}
		page++
	}

	seen := make(map[string]bool, len(users))
	unique := make([]map[string]any, 0, len(users))
	for _, user := range users {
		key := fmt.Sprint(user["id"])
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, user)
	}

	return unique, nil
}

func (s *UsersService) buildQuery(opts UserQueryOptions, page int) string {
	args := map[string]any{
		"limit": opts.Limit,
		"page":  page,
	}
	if len(opts.Emails) > 0 {
		args["emails"] = opts.Emails
	}
	if len(opts.IDs) > 0 {
		args["ids"] = opts.IDs
	}
	if opts.Name != "" {
		args["name"] = opts.Name
	}
	if opts.Kind != "" && opts.Kind != "all" {
		args["kind"] = query.Raw(opts.Kind)
	}
	if opts.NewestFirst {
		args["newest_first"] = true
	}
	if opts.NonActive {
		args["non_active"] = true
	}
	return query.Build(query.KindQuery, "users", args, opts.Fields)
}

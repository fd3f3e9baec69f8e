// Package monday provides a client for the monday.com GraphQL API.
//
// The client wraps every request in a retry governor that understands the
// provider's complexity-budget and mutation-rate fault payloads, sleeping
// the provider-specified cooldown between bounded attempts. Paginated
// collections are collected through cursor continuation queries built from
// the original query's item selection set.
//
// # Usage
//
//	client, err := monday.NewClient("your-api-key",
//		monday.WithLogger(logger),
//		monday.WithMaxRetries(4),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Every item on a board, across all pages
//	items, err := client.Items.Page(ctx, []int64{1234567890}, monday.ItemsPageOptions{
//		Fields: "id name column_values { id text }",
//	})
//
// Item records are returned as opaque maps: the caller chooses the
// response fields per query, so there is no fixed item schema to map onto.
//
// # Error handling
//
// Retryable faults that outlive the attempt budget, and every terminal
// fault, surface as typed errors: *ComplexityLimitError,
// *MutationLimitError, *TransportError, *APIError (raw provider payload
// attached) and *QueryFormatError. Structural pagination failures are
// *pagination.Error.
package monday

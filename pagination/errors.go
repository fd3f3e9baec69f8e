package pagination

// Error indicates a structural pagination failure: the client's
// query-shape assumption was violated, not the server's state. Retrying
// would not help, so it is distinct from the provider fault types.
type Error struct {
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return "pagination failed: " + e.Message
}

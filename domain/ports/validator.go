package ports

// RequestValidator checks request structs before they are sent.
type RequestValidator interface {
	// Validate returns nil when v satisfies its constraints.
	Validate(v any) error
}

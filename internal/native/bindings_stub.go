//go:build !cgo || !sdknative

package native

// Init returns ErrNotBuilt.
func Init(string) (Client, error) {
	return 0, ErrNotBuilt
}

// RunCommand returns ErrNotBuilt.
func RunCommand(string, Client) (string, error) {
	return "", ErrNotBuilt
}

// Free returns ErrNotBuilt.
func Free(Client) error {
	return ErrNotBuilt
}

//go:build !cgo

package preserver

// defaultParser returns nil when CGo is unavailable (pure Go build); parsing
// then fails with ErrNoParser unless WithParser supplies one.
func defaultParser() Parser {
	return nil
}

package ports

import "io"

// AssetStore persists uploaded binary assets outside the document store.
// Delete failures are logged by callers, never propagated to the client.
type AssetStore interface {
	// Store writes the asset and returns an opaque reference usable as a
	// post's image URL.
	Store(r io.Reader, filename string) (string, error)
	Delete(ref string) error
}

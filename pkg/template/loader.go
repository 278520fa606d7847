package template

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches a template document from a Source.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures the built-in loader implementation.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS sources.
	FileSystem fs.FS
	// HTTPClient, when set, is used for URL sources. A clone is taken so the
	// caller's client is never mutated.
	HTTPClient *http.Client
	// AllowHTTPFallback enables URL sources with a default client when no
	// HTTPClient is supplied.
	AllowHTTPFallback bool
	// RequestTimeout bounds URL fetches.
	RequestTimeout time.Duration
}

// NewLoaderOptions returns options with conservative defaults: no HTTP unless
// explicitly enabled, 30s timeout once it is.
func NewLoaderOptions() LoaderOptions {
	return LoaderOptions{
		RequestTimeout: 30 * time.Second,
	}
}

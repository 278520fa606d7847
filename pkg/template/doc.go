// Package template exposes the public contracts for fetching raw SVG
// template documents: a Source describing where a template lives (file,
// fs.FS, URL), a Document wrapping the fetched bytes, and the Loader
// interface implemented under internal/loader. Parsing and field discovery
// happen later, in pkg/extract; this layer only moves bytes.
package template

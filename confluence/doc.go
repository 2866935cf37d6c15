// Package confluence fetches pages from a Confluence Cloud v2 REST API and
// converts them into normalised plain-text documents.
//
// The Client performs authenticated, rate-limited GET requests. The Loader
// walks cursor-based pagination, hydrates page stubs with full body content
// and assembles document.Document values; StreamSpacePages produces the same
// documents lazily in fixed-size batches with bounded concurrent hydration,
// keeping memory constant regardless of result count.
//
// Loads are best-effort at the page level: a failing list or lookup call
// aborts the whole operation, but a failing body fetch for a single page
// degrades to a document with empty text rather than failing the load.
package confluence

package confluence

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/custodia-labs/confluence-go/document"
	"github.com/custodia-labs/confluence-go/internal/logger"
)

// LoadOptions holds the tunable parts of a paginated load.
type LoadOptions struct {
	limit        int
	hasLimit     bool
	status       []string
	bodyFormat   string
	fetchTimeout time.Duration
	extra        Params
}

// LoadOption mutates LoadOptions.
type LoadOption func(*LoadOptions)

// WithLimit caps the total number of documents returned. A limit of zero or
// less short-circuits the load to an empty result without network calls.
func WithLimit(n int) LoadOption {
	return func(o *LoadOptions) {
		o.limit = n
		o.hasLimit = true
	}
}

// WithStatus overrides the page status filter (default: current).
func WithStatus(statuses ...string) LoadOption {
	return func(o *LoadOptions) {
		o.status = statuses
	}
}

// WithBodyFormat overrides the requested body representation
// (default: storage).
func WithBodyFormat(format string) LoadOption {
	return func(o *LoadOptions) {
		o.bodyFormat = format
	}
}

// WithFetchTimeout overrides the per-request timeout applied to concurrent
// body hydration in page streams (default: 30s).
func WithFetchTimeout(d time.Duration) LoadOption {
	return func(o *LoadOptions) {
		o.fetchTimeout = d
	}
}

// WithParam sets an additional semantic query parameter verbatim.
func WithParam(key string, value any) LoadOption {
	return func(o *LoadOptions) {
		if o.extra == nil {
			o.extra = Params{}
		}
		o.extra[key] = value
	}
}

func newLoadOptions(opts []LoadOption) LoadOptions {
	o := LoadOptions{
		status:       []string{StatusCurrent},
		bodyFormat:   FormatStorage,
		fetchTimeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// baseParams builds the initial request parameter set.
func (o LoadOptions) baseParams() Params {
	params := Params{
		paramStatus:     o.status,
		paramBodyFormat: o.bodyFormat,
	}
	for k, v := range o.extra {
		params[k] = v
	}
	return params
}

// Loader drives paginated page loads against a client and assembles
// normalised documents.
type Loader struct {
	client *Client
}

// NewLoader creates a loader on top of an API client.
func NewLoader(client *Client) *Loader {
	return &Loader{client: client}
}

// Client returns the underlying API client.
func (l *Loader) Client() *Client {
	return l.client
}

// LoadPages walks the flat page list endpoint and returns every matching
// page as a hydrated document, in server order.
func (l *Loader) LoadPages(ctx context.Context, opts ...LoadOption) ([]document.Document, error) {
	return l.collect(ctx, pathPages, newLoadOptions(opts))
}

// LoadSpacePages resolves the space key or id and walks its page list.
func (l *Loader) LoadSpacePages(ctx context.Context, spaceKeyOrID string, opts ...LoadOption) ([]document.Document, error) {
	spaceID, err := ResolveSpaceID(ctx, l.client, spaceKeyOrID)
	if err != nil {
		return nil, err
	}
	return l.collect(ctx, spacePagesPath(spaceID), newLoadOptions(opts))
}

// LoadSpacePagesSince loads a space's pages and keeps only those whose
// version creation timestamp is at or after the cutoff. The cutoff accepts a
// time.Time or an ISO-8601 string; anything else fails with
// ErrInvalidTimestamp before any network activity. Note that a WithLimit cap
// bounds the candidate set before filtering, not the filtered output.
func (l *Loader) LoadSpacePagesSince(ctx context.Context, spaceKeyOrID string, since any, opts ...LoadOption) ([]document.Document, error) {
	cutoff, err := parseInstant(since)
	if err != nil {
		return nil, err
	}

	docs, err := l.LoadSpacePages(ctx, spaceKeyOrID, opts...)
	if err != nil {
		return nil, err
	}

	filtered := make([]document.Document, 0, len(docs))
	for _, doc := range docs {
		createdAt, ok := versionCreatedAt(doc)
		if !ok {
			// Missing or unparsable timestamps exclude the document.
			continue
		}
		if !createdAt.Before(cutoff) {
			filtered = append(filtered, doc)
		}
	}
	return filtered, nil
}

// collect runs the cursor-walking aggregation loop. List failures abort the
// whole operation; individual hydration failures degrade to the stub.
func (l *Loader) collect(ctx context.Context, path string, opts LoadOptions) ([]document.Document, error) {
	if opts.hasLimit && opts.limit <= 0 {
		return []document.Document{}, nil
	}

	params := opts.baseParams()
	var docs []document.Document

	for {
		var list pageList
		if err := l.client.Get(ctx, path, params.Encode(), &list); err != nil {
			return nil, err
		}
		logger.Debug("listed %d page stubs", len(list.Results))

		for _, stub := range list.Results {
			docs = append(docs, l.hydrate(ctx, stub, opts.bodyFormat).ToDocument())
		}

		if opts.hasLimit && len(docs) >= opts.limit {
			return docs[:opts.limit], nil
		}

		cursor := nextCursor(list.Links)
		if cursor == "" {
			return docs, nil
		}
		params[paramCursor] = cursor
	}
}

// hydrate fetches the full page record for a stub. A fetch failure falls
// back to the stub itself: one page must never abort a whole batch, its
// document just ends up with empty text.
func (l *Loader) hydrate(ctx context.Context, stub Page, bodyFormat string) Page {
	page, err := l.client.GetPage(ctx, stub.ID, bodyFormat)
	if err != nil {
		logger.Warn("hydrate page %s: %v", stub.ID, err)
		return stub
	}
	return *page
}

// nextCursor extracts the pagination cursor from a list envelope's next
// link. The link may be absolute or relative; the cursor is read from its
// query string generically, with no assumption about parameter position.
func nextCursor(links *Links) string {
	if links == nil || links.Next == "" {
		return ""
	}
	next, err := url.Parse(links.Next)
	if err != nil {
		return ""
	}
	return next.Query().Get(paramCursor)
}

func spacePagesPath(spaceID string) string {
	return pathSpaces + "/" + spaceID + "/pages"
}

// parseInstant accepts an already-structured instant or an ISO-8601 string.
func parseInstant(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		if t != nil {
			return *t, nil
		}
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTimestamp, v)
}

// versionCreatedAt reads a document's version creation timestamp.
func versionCreatedAt(doc document.Document) (time.Time, bool) {
	version, ok := doc.Metadata[document.KeyVersion].(*Version)
	if !ok || version == nil || version.CreatedAt == "" {
		return time.Time{}, false
	}
	createdAt, err := time.Parse(time.RFC3339, version.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return createdAt, true
}

// Package document defines the normalised output record produced by the
// confluence loaders. A Document is built once from a source page and is
// immutable afterwards; callers derive new values by building new Documents.
package document

import (
	"fmt"
	"strings"
)

// Metadata keys every Document carries. Individual values may be nil when the
// source page omits the field, but the key set itself is fixed.
const (
	KeyTitle     = "title"
	KeySpaceID   = "space_id"
	KeyParentID  = "parent_id"
	KeyStatus    = "status"
	KeyCreatedAt = "created_at"
	KeyAuthorID  = "author_id"
	KeyVersion   = "version"
	KeyURL       = "url"
	KeyEditURL   = "edit_url"
)

// metadataKeys fixes the rendering order of String.
var metadataKeys = []string{
	KeyTitle,
	KeySpaceID,
	KeyParentID,
	KeyStatus,
	KeyCreatedAt,
	KeyAuthorID,
	KeyVersion,
	KeyURL,
	KeyEditURL,
}

// Document is a single wiki page reduced to an id, its plain-text body and a
// fixed metadata set.
type Document struct {
	// ID is the source page id.
	ID string

	// Text is the extracted plain-text body. May be empty, never absent.
	Text string

	// Metadata holds the fixed key set above.
	Metadata map[string]any
}

// Keys returns the fixed metadata key set in rendering order.
func Keys() []string {
	keys := make([]string, len(metadataKeys))
	copy(keys, metadataKeys)
	return keys
}

// String renders the document as a readable block: metadata lines in fixed
// key order followed by the text body.
func (d Document) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "id: %s\n", d.ID)
	for _, key := range metadataKeys {
		value, ok := d.Metadata[key]
		if !ok || value == nil {
			continue
		}
		fmt.Fprintf(&b, "%s: %v\n", key, value)
	}
	b.WriteString(d.Text)
	return b.String()
}

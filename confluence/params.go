package confluence

import (
	"fmt"
	"net/url"
	"strings"
)

// Body formats the v2 API can return page content in.
const (
	// FormatStorage is the raw storage markup (XHTML-based).
	FormatStorage = "storage"
	// FormatView is the rendered HTML representation.
	FormatView = "view"
	// FormatAtlasDoc is the structured rich-text document format.
	FormatAtlasDoc = "atlas_doc_format"
)

// StatusCurrent is the default page status filter.
const StatusCurrent = "current"

// Semantic parameter keys recognised by Params.Encode.
const (
	paramSpaceIDs   = "space_ids"
	paramStatus     = "status"
	paramBodyFormat = "body_format"
	paramCursor     = "cursor"
	paramLimit      = "limit"
)

// Params is a semantic query parameter set. Encode maps it to the wire
// format; unknown keys pass through verbatim, which keeps the builder
// forward-compatible with new API parameters.
type Params map[string]any

// Encode maps the semantic parameter set to wire-format query values.
// List-valued space and status filters are comma-joined under their wire
// keys, the body format key is renamed, everything else is stringified.
func (p Params) Encode() url.Values {
	values := url.Values{}
	for key, value := range p {
		switch key {
		case paramSpaceIDs:
			values.Set("space-id", joinList(value))
		case paramStatus:
			values.Set("status", joinList(value))
		case paramBodyFormat:
			values.Set("body-format", stringify(value))
		default:
			values.Set(key, stringify(value))
		}
	}
	return values
}

// joinList comma-joins list values; scalar values stringify as-is.
func joinList(value any) string {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, ",")
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ",")
	default:
		return stringify(value)
	}
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

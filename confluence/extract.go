package confluence

import (
	"github.com/custodia-labs/confluence-go/htmltext"
)

// ExtractText converts a raw page body payload into plain text. The three
// recognised representations are checked in priority order: storage and view
// carry markup and go through the strip-and-decode path; the atlas document
// format is passed through unmodified. Any other shape, including a nil or
// empty body, yields the empty string. Total over its input; never fails.
func ExtractText(body *Body) string {
	switch {
	case body == nil:
		return ""
	case body.Storage != nil:
		return htmltext.Clean(body.Storage.Value)
	case body.View != nil:
		return htmltext.Clean(body.View.Value)
	case body.AtlasDoc != nil:
		return body.AtlasDoc.Value
	default:
		return ""
	}
}

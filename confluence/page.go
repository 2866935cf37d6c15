package confluence

import (
	"github.com/custodia-labs/confluence-go/document"
)

// Page is the raw v2 API page shape. List endpoints return stubs (no body);
// the get-by-id endpoint returns the full record including body content.
type Page struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	SpaceID   string   `json:"spaceId"`
	ParentID  string   `json:"parentId"`
	AuthorID  string   `json:"authorId"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"createdAt"`
	Version   *Version `json:"version"`
	Body      *Body    `json:"body"`
	Links     *Links   `json:"_links"`
}

// Version is a page's version sub-record. It is carried into document
// metadata as an opaque structured value; the time-windowed load reads its
// creation timestamp.
type Version struct {
	Number    int    `json:"number"`
	Message   string `json:"message"`
	MinorEdit bool   `json:"minorEdit"`
	AuthorID  string `json:"authorId"`
	CreatedAt string `json:"createdAt"`
}

// Body nests page content under a different key per requested format.
type Body struct {
	Storage  *BodyContent `json:"storage"`
	View     *BodyContent `json:"view"`
	AtlasDoc *BodyContent `json:"atlas_doc_format"`
}

// BodyContent is one body representation.
type BodyContent struct {
	Representation string `json:"representation"`
	Value          string `json:"value"`
}

// Links carries page and envelope link fields. On a page it holds the web
// and edit URLs; on a list envelope it holds the opaque next-page link.
type Links struct {
	WebUI  string `json:"webui"`
	EditUI string `json:"editui"`
	Base   string `json:"base"`
	Next   string `json:"next"`
}

// Space is the raw v2 API space shape.
type Space struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// pageList is the envelope returned by page list endpoints.
type pageList struct {
	Results []Page `json:"results"`
	Links   *Links `json:"_links"`
}

// spaceList is the envelope returned by the space lookup endpoint.
type spaceList struct {
	Results []Space `json:"results"`
}

// ToDocument converts a raw page into the normalised document record. The
// metadata key set is fixed; fields the page omits become nil values.
func (p Page) ToDocument() document.Document {
	meta := map[string]any{
		document.KeyTitle:     orNil(p.Title),
		document.KeySpaceID:   orNil(p.SpaceID),
		document.KeyParentID:  orNil(p.ParentID),
		document.KeyStatus:    orNil(p.Status),
		document.KeyCreatedAt: orNil(p.CreatedAt),
		document.KeyAuthorID:  orNil(p.AuthorID),
		document.KeyVersion:   nil,
		document.KeyURL:       nil,
		document.KeyEditURL:   nil,
	}
	if p.Version != nil {
		meta[document.KeyVersion] = p.Version
	}
	if p.Links != nil {
		meta[document.KeyURL] = orNil(p.Links.WebUI)
		meta[document.KeyEditURL] = orNil(p.Links.EditUI)
	}
	return document.Document{
		ID:       p.ID,
		Text:     ExtractText(p.Body),
		Metadata: meta,
	}
}

// orNil maps the empty string to an absent metadata value.
func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

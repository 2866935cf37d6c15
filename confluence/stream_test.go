package confluence

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamMux serves a single space ("77") whose page list is split into
// fixed-size list pages linked by cursors. getOverride, when non-nil, may
// take over the get-by-id response for selected ids; it returns true when it
// handled the request.
func streamMux(t *testing.T, stubIDs []string, perListPage int, getOverride func(id string, w http.ResponseWriter) bool) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /wiki/api/v2/spaces", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, spaceList{Results: []Space{{ID: "77", Key: "DOCS"}}})
	})
	mux.HandleFunc("GET /wiki/api/v2/spaces/{id}/pages", func(w http.ResponseWriter, r *http.Request) {
		offset := 0
		if cursor := r.URL.Query().Get("cursor"); cursor != "" {
			fmt.Sscanf(cursor, "o%d", &offset)
		}
		end := offset + perListPage
		if end > len(stubIDs) {
			end = len(stubIDs)
		}
		stubs := make([]Page, 0, end-offset)
		for _, id := range stubIDs[offset:end] {
			stubs = append(stubs, Page{ID: id, Title: "Page " + id})
		}
		list := pageList{Results: stubs}
		if end < len(stubIDs) {
			list.Links = &Links{Next: fmt.Sprintf("/wiki/api/v2/spaces/77/pages?cursor=o%d", end)}
		}
		writeJSON(t, w, list)
	})
	mux.HandleFunc("GET /wiki/api/v2/pages/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if getOverride != nil && getOverride(id, w) {
			return
		}
		writeJSON(t, w, Page{
			ID:    id,
			Title: "Page " + id,
			Body:  &Body{Storage: &BodyContent{Value: "<p>body " + id + "</p>"}},
		})
	})
	return mux
}

func collectBatches(t *testing.T, stream *PageStream) [][]string {
	t.Helper()
	var batches [][]string
	for {
		docs, err := stream.Next(context.Background())
		if errors.Is(err, ErrStreamDone) {
			return batches
		}
		require.NoError(t, err)
		ids := make([]string, len(docs))
		for i, doc := range docs {
			ids[i] = doc.ID
		}
		batches = append(batches, ids)
	}
}

func TestStream_BatchesOfFourWithPartialTail(t *testing.T) {
	stubs := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}
	loader := newTestLoader(t, streamMux(t, stubs, 5, nil))

	batches := collectBatches(t, loader.StreamSpacePages("DOCS"))

	require.Len(t, batches, 3)
	assert.Equal(t, []string{"1", "2", "3", "4"}, batches[0])
	assert.Equal(t, []string{"5", "6", "7", "8"}, batches[1])
	assert.Equal(t, []string{"9", "10"}, batches[2])
}

func TestStream_ExactMultipleOfBatchSize(t *testing.T) {
	stubs := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	loader := newTestLoader(t, streamMux(t, stubs, 4, nil))

	batches := collectBatches(t, loader.StreamSpacePages("DOCS"))
	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 4)
	assert.Len(t, batches[1], 4)
}

func TestStream_SingleShortBatch(t *testing.T) {
	loader := newTestLoader(t, streamMux(t, []string{"1", "2"}, 5, nil))

	batches := collectBatches(t, loader.StreamSpacePages("DOCS"))
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"1", "2"}, batches[0])
}

func TestStream_EmptySpace(t *testing.T) {
	loader := newTestLoader(t, streamMux(t, nil, 5, nil))

	stream := loader.StreamSpacePages("DOCS")
	_, err := stream.Next(context.Background())
	assert.ErrorIs(t, err, ErrStreamDone)
}

func TestStream_DocumentsAreHydrated(t *testing.T) {
	loader := newTestLoader(t, streamMux(t, []string{"1"}, 5, nil))

	stream := loader.StreamSpacePages("DOCS")
	docs, err := stream.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "body 1", docs[0].Text)
}

func TestStream_ResolutionFailureSurfacesOnFirstNext(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /wiki/api/v2/spaces", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, spaceList{Results: []Space{}})
	})
	loader := newTestLoader(t, mux)

	stream := loader.StreamSpacePages("GHOST")
	_, err := stream.Next(context.Background())
	require.ErrorIs(t, err, ErrSpaceNotFound)

	// The error is emitted once; the stream is done afterwards.
	_, err = stream.Next(context.Background())
	assert.ErrorIs(t, err, ErrStreamDone)
}

func TestStream_ListFailureEndsStream(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /wiki/api/v2/spaces/{id}/pages", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	loader := newTestLoader(t, mux)

	stream := loader.StreamSpacePages("77") // numeric id, no resolution call
	_, err := stream.Next(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)

	_, err = stream.Next(context.Background())
	assert.ErrorIs(t, err, ErrStreamDone)
}

func TestStream_HydrationFailureKeepsStubInOrder(t *testing.T) {
	mux := streamMux(t, []string{"1", "2", "3", "4"}, 5, func(id string, w http.ResponseWriter) bool {
		if id == "2" {
			w.WriteHeader(http.StatusInternalServerError)
			return true
		}
		return false
	})
	loader := newTestLoader(t, mux)

	stream := loader.StreamSpacePages("DOCS")
	docs, err := stream.Next(context.Background())
	require.NoError(t, err)

	ids := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids, "stub order survives concurrent hydration")
	assert.Equal(t, "", docs[1].Text, "failed hydration falls back to the bodyless stub")
	assert.Equal(t, "body 1", docs[0].Text)
}

func TestStream_TimeoutDropsItemFromBatch(t *testing.T) {
	mux := streamMux(t, []string{"1", "2", "3", "4"}, 5, func(id string, w http.ResponseWriter) bool {
		if id == "3" {
			time.Sleep(300 * time.Millisecond)
		}
		return false
	})
	loader := newTestLoader(t, mux)

	stream := loader.StreamSpacePages("DOCS", WithFetchTimeout(50*time.Millisecond))
	docs, err := stream.Next(context.Background())
	require.NoError(t, err)

	ids := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}
	assert.Equal(t, []string{"1", "2", "4"}, ids, "a timed-out fetch is dropped, not substituted")

	_, err = stream.Next(context.Background())
	assert.ErrorIs(t, err, ErrStreamDone)
}

package confluence

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/confluence-go/document"
	"github.com/custodia-labs/confluence-go/internal/logger"
)

const (
	// batchSize is the number of documents per emitted batch.
	batchSize = 4

	// hydrateConcurrency bounds in-flight body fetches per batch.
	hydrateConcurrency = 4
)

// PageStream is a pull-based, finite, non-restartable sequence of document
// batches over a space's pages. Memory stays bounded by one list page plus
// one batch; nothing is fetched until Next is called. A stream instance
// belongs to a single consumer and is not safe to share.
type PageStream struct {
	loader       *Loader
	spaceKeyOrID string
	opts         LoadOptions

	path     string
	params   Params
	buf      []Page
	started  bool
	finished bool
	failed   bool
}

// StreamSpacePages creates a lazy batch stream over the pages of a space.
// The space key is resolved on the first Next call; a resolution failure
// surfaces there and ends the stream.
func (l *Loader) StreamSpacePages(spaceKeyOrID string, opts ...LoadOption) *PageStream {
	return &PageStream{
		loader:       l,
		spaceKeyOrID: spaceKeyOrID,
		opts:         newLoadOptions(opts),
	}
}

// Next produces the next batch of hydrated documents. Every batch except
// possibly the last holds exactly four documents; the last holds one to
// four. Once the sequence is exhausted, or after any returned error, Next
// returns ErrStreamDone.
func (s *PageStream) Next(ctx context.Context) ([]document.Document, error) {
	if s.failed {
		return nil, ErrStreamDone
	}

	if !s.started {
		s.started = true
		spaceID, err := ResolveSpaceID(ctx, s.loader.client, s.spaceKeyOrID)
		if err != nil {
			s.failed = true
			return nil, err
		}
		s.path = spacePagesPath(spaceID)
		s.params = s.opts.baseParams()
	}

	// Fill the stub buffer until a full batch is available or the server
	// runs out of pages.
	for len(s.buf) < batchSize && !s.finished {
		var list pageList
		if err := s.loader.client.Get(ctx, s.path, s.params.Encode(), &list); err != nil {
			s.failed = true
			return nil, err
		}
		s.buf = append(s.buf, list.Results...)

		cursor := nextCursor(list.Links)
		if cursor == "" {
			s.finished = true
		} else {
			s.params[paramCursor] = cursor
		}
	}

	if len(s.buf) == 0 {
		return nil, ErrStreamDone
	}

	n := batchSize
	if len(s.buf) < n {
		n = len(s.buf)
	}
	batch := s.buf[:n]
	s.buf = s.buf[n:]

	return s.hydrateBatch(ctx, batch), nil
}

// hydrateBatch fetches body content for a batch of stubs with bounded
// concurrency. Results are collected by original position so concurrent
// completion order never reorders the batch. A fetch that exceeds its
// timeout is dropped from the batch; any other failure keeps the stub,
// which extracts to empty text.
func (s *PageStream) hydrateBatch(ctx context.Context, stubs []Page) []document.Document {
	hydrated := make([]*Page, len(stubs))

	var g errgroup.Group
	g.SetLimit(hydrateConcurrency)
	for i, stub := range stubs {
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, s.opts.fetchTimeout)
			defer cancel()

			page, err := s.loader.client.GetPage(fetchCtx, stub.ID, s.opts.bodyFormat)
			switch {
			case err == nil:
				hydrated[i] = page
			case errors.Is(err, context.DeadlineExceeded):
				logger.Warn("hydrate page %s timed out, dropping", stub.ID)
			default:
				logger.Warn("hydrate page %s: %v", stub.ID, err)
				hydrated[i] = &stub
			}
			return nil
		})
	}
	_ = g.Wait()

	docs := make([]document.Document, 0, len(stubs))
	for _, page := range hydrated {
		if page != nil {
			docs = append(docs, page.ToDocument())
		}
	}
	return docs
}

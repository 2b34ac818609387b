// ABOUTME: FeedSink interface for persisting assembled feed documents
// ABOUTME: Collapses all directory and file bookkeeping into one injected capability

package interfaces

import "context"

// FeedRef describes one written feed document, for index generation.
type FeedRef struct {
	// Title is the channel title of the written feed.
	Title string

	// FileName is the sink-relative name of the feed document.
	FileName string

	// ItemCount is the number of items the document carries.
	ItemCount int
}

// FeedSink persists assembled output. Implementations own directory
// creation and naming; the pipeline never touches the filesystem directly.
type FeedSink interface {
	// WriteFeed persists one rendered feed document under the given base
	// name (extension is the sink's concern) and returns its reference.
	WriteFeed(ctx context.Context, baseName string, xml []byte, title string, itemCount int) (FeedRef, error)

	// WriteIndex persists the index page enumerating all written feeds.
	WriteIndex(ctx context.Context, refs []FeedRef) error
}

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"

	"releaseradar/core/domain"
	"releaseradar/core/errors"
	"releaseradar/core/interfaces"
)

var runNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// scriptedFetcher serves canned pages and records every fetch in order.
type scriptedFetcher struct {
	pages map[string]string
	calls []string
}

func (f *scriptedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	page, ok := f.pages[url]
	if !ok {
		return "", &errors.FetchError{URL: url, StatusCode: 404, Err: fmt.Errorf("not found")}
	}
	return page, nil
}

type recordingSink struct {
	feeds    map[string][]byte
	counts   map[string]int
	index    []interfaces.FeedRef
	indexErr error
	failBase string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{feeds: make(map[string][]byte), counts: make(map[string]int)}
}

func (s *recordingSink) WriteFeed(ctx context.Context, baseName string, xmlBytes []byte, title string, itemCount int) (interfaces.FeedRef, error) {
	if s.failBase != "" && s.failBase == baseName {
		return interfaces.FeedRef{}, fmt.Errorf("disk full")
	}
	s.feeds[baseName] = xmlBytes
	s.counts[baseName] = itemCount
	return interfaces.FeedRef{Title: title, FileName: baseName + ".xml", ItemCount: itemCount}, nil
}

func (s *recordingSink) WriteIndex(ctx context.Context, refs []interfaces.FeedRef) error {
	if s.indexErr != nil {
		return s.indexErr
	}
	s.index = refs
	return nil
}

func newRunner(fetcher interfaces.Fetcher, sink interfaces.FeedSink) *Runner {
	deps := interfaces.Dependencies{
		Fetcher: fetcher,
		Logger:  interfaces.NopLogger{},
		Clock:   interfaces.FixedClock{Instant: runNow},
	}
	return New(deps, sink, Options{})
}

func bandcampListing(count int) string {
	var b strings.Builder
	b.WriteString(`<html><body><ol class="music-grid">`)
	for i := 1; i <= count; i++ {
		fmt.Fprintf(&b, `<li class="music-grid-item"><a href="/album/rec-%d"><p class="title">Record %d</p></a></li>`, i, i)
	}
	b.WriteString(`</ol></body></html>`)
	return b.String()
}

func bandcampDetail(date string) string {
	return fmt.Sprintf(`<html><head>
		<meta itemprop="datePublished" content="%s">
		<meta property="og:description" content="Fresh off the press.">
	</head><body>release page</body></html>`, date)
}

const quietPage = `<html><body><p>Nothing for sale yet.</p></body></html>`

func bandcampArtist(name, host string) domain.Artist {
	return domain.Artist{
		Name:        name,
		URL:         "https://" + host + "/music",
		MaxReleases: 2,
	}
}

func parseFeed(t *testing.T, sink *recordingSink, baseName string) *gofeed.Feed {
	t.Helper()
	raw, ok := sink.feeds[baseName]
	if !ok {
		t.Fatalf("no feed written for %q", baseName)
	}
	parsed, err := gofeed.NewParser().ParseString(string(raw))
	if err != nil {
		t.Fatalf("written feed did not parse: %v", err)
	}
	return parsed
}

func TestRun_SingleRealReleaseAcrossGroup(t *testing.T) {
	fetcher := &scriptedFetcher{pages: map[string]string{
		"https://one.bandcamp.com/music":         quietPage,
		"https://two.bandcamp.com/music":         quietPage,
		"https://three.bandcamp.com/music":       bandcampListing(1),
		"https://three.bandcamp.com/album/rec-1": bandcampDetail("2024-03-01"),
	}}
	sink := newRecordingSink()
	runner := newRunner(fetcher, sink)

	group := domain.FeedGroup{
		Title:    "Watchlist",
		BaseName: "watchlist",
		Artists: []domain.Artist{
			bandcampArtist("One", "one.bandcamp.com"),
			bandcampArtist("Two", "two.bandcamp.com"),
			bandcampArtist("Three", "three.bandcamp.com"),
		},
	}

	summary, err := runner.Run(context.Background(), []domain.FeedGroup{group})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	parsed := parseFeed(t, sink, "watchlist")
	if len(parsed.Items) != 1 {
		t.Fatalf("len(items) = %d, want exactly 1", len(parsed.Items))
	}
	if parsed.Items[0].Title != "Three - Record 1" {
		t.Errorf("Title = %q, want the real release, not a placeholder", parsed.Items[0].Title)
	}
	if parsed.Items[0].Link != "https://three.bandcamp.com/album/rec-1" {
		t.Errorf("Link = %q, want absolutized release URL", parsed.Items[0].Link)
	}
	if parsed.Items[0].PublishedParsed == nil || !parsed.Items[0].PublishedParsed.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("PublishedParsed = %v, want detail page date", parsed.Items[0].PublishedParsed)
	}

	if summary.FeedsWritten != 1 || summary.ItemsPublished != 1 {
		t.Errorf("summary = %+v, want 1 feed with 1 item", summary)
	}
}

func TestRun_EmptyGroupPublishesDiagnosticItem(t *testing.T) {
	fetcher := &scriptedFetcher{pages: map[string]string{
		"https://one.bandcamp.com/music": quietPage,
		"https://two.bandcamp.com/music": quietPage,
	}}
	sink := newRecordingSink()
	runner := newRunner(fetcher, sink)

	group := domain.FeedGroup{
		BaseName: "quiet",
		Artists: []domain.Artist{
			bandcampArtist("One", "one.bandcamp.com"),
			bandcampArtist("Two", "two.bandcamp.com"),
		},
	}

	_, err := runner.Run(context.Background(), []domain.FeedGroup{group})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	parsed := parseFeed(t, sink, "quiet")
	if len(parsed.Items) != 1 {
		t.Fatalf("len(items) = %d, want exactly 1", len(parsed.Items))
	}
	if parsed.Items[0].Title != "No Releases Found" {
		t.Errorf("Title = %q, want the diagnostic item", parsed.Items[0].Title)
	}
}

func TestRun_FetchFailureNeverReachesFeed(t *testing.T) {
	fetcher := &scriptedFetcher{pages: map[string]string{
		// "down.bandcamp.com" is deliberately unserved.
		"https://up.bandcamp.com/music":       bandcampListing(1),
		"https://up.bandcamp.com/album/rec-1": bandcampDetail("2024-03-01"),
	}}
	sink := newRecordingSink()
	runner := newRunner(fetcher, sink)

	group := domain.FeedGroup{
		BaseName: "mixed",
		Artists: []domain.Artist{
			bandcampArtist("Down", "down.bandcamp.com"),
			bandcampArtist("Up", "up.bandcamp.com"),
		},
	}

	summary, err := runner.Run(context.Background(), []domain.FeedGroup{group})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.ArtistsFailed != 1 {
		t.Errorf("ArtistsFailed = %d, want 1", summary.ArtistsFailed)
	}

	parsed := parseFeed(t, sink, "mixed")
	if len(parsed.Items) != 1 {
		t.Fatalf("len(items) = %d, want only the healthy artist's release", len(parsed.Items))
	}
	for _, item := range parsed.Items {
		if strings.Contains(item.Title, "Error Reading") {
			t.Errorf("error candidate leaked into published feed: %q", item.Title)
		}
	}
}

func TestRun_SequentialFetchOrder(t *testing.T) {
	fetcher := &scriptedFetcher{pages: map[string]string{
		"https://one.bandcamp.com/music":       bandcampListing(1),
		"https://one.bandcamp.com/album/rec-1": bandcampDetail("2024-03-01"),
		"https://two.bandcamp.com/music":       bandcampListing(1),
		"https://two.bandcamp.com/album/rec-1": bandcampDetail("2024-04-01"),
	}}
	sink := newRecordingSink()
	runner := newRunner(fetcher, sink)

	group := domain.FeedGroup{
		BaseName: "ordered",
		Artists: []domain.Artist{
			bandcampArtist("One", "one.bandcamp.com"),
			bandcampArtist("Two", "two.bandcamp.com"),
		},
	}

	_, err := runner.Run(context.Background(), []domain.FeedGroup{group})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{
		"https://one.bandcamp.com/music",
		"https://one.bandcamp.com/album/rec-1",
		"https://two.bandcamp.com/music",
		"https://two.bandcamp.com/album/rec-1",
	}
	if len(fetcher.calls) != len(want) {
		t.Fatalf("fetch calls = %v", fetcher.calls)
	}
	for i := range want {
		if fetcher.calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, fetcher.calls[i], want[i])
		}
	}
}

func TestRun_GroupFailureDoesNotStopOthers(t *testing.T) {
	fetcher := &scriptedFetcher{pages: map[string]string{
		"https://one.bandcamp.com/music": quietPage,
		"https://two.bandcamp.com/music": quietPage,
	}}
	sink := newRecordingSink()
	sink.failBase = "first"
	runner := newRunner(fetcher, sink)

	groups := []domain.FeedGroup{
		{BaseName: "first", Artists: []domain.Artist{bandcampArtist("One", "one.bandcamp.com")}},
		{BaseName: "second", Artists: []domain.Artist{bandcampArtist("Two", "two.bandcamp.com")}},
	}

	summary, err := runner.Run(context.Background(), groups)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.GroupsFailed != 1 {
		t.Errorf("GroupsFailed = %d, want 1", summary.GroupsFailed)
	}
	if summary.FeedsWritten != 1 {
		t.Errorf("FeedsWritten = %d, want 1", summary.FeedsWritten)
	}
	if _, ok := sink.feeds["second"]; !ok {
		t.Error("second group should still be written")
	}
	if len(sink.index) != 1 || sink.index[0].FileName != "second.xml" {
		t.Errorf("index = %+v, want only the written feed", sink.index)
	}
}

func TestRun_IndexWriteErrorPropagates(t *testing.T) {
	fetcher := &scriptedFetcher{pages: map[string]string{
		"https://one.bandcamp.com/music": quietPage,
	}}
	sink := newRecordingSink()
	sink.indexErr = fmt.Errorf("read-only filesystem")
	runner := newRunner(fetcher, sink)

	groups := []domain.FeedGroup{
		{BaseName: "solo", Artists: []domain.Artist{bandcampArtist("One", "one.bandcamp.com")}},
	}

	_, err := runner.Run(context.Background(), groups)
	if err == nil {
		t.Fatal("Run() expected index write error")
	}
}

func TestRun_BandcampPreOrderNeverPublished(t *testing.T) {
	// One-album artists get their music page redirected to the album page;
	// a pre-order payload date there must not reach the feed.
	page := `<html><body>
		<script data-tralbum='{"current":{"title":"Pre-Order","release_date":"01 Mar 2044 00:00:00 GMT"},"url":"https://one.bandcamp.com/album/pre-order"}'></script>
	</body></html>`
	fetcher := &scriptedFetcher{pages: map[string]string{
		"https://one.bandcamp.com/music": page,
	}}
	sink := newRecordingSink()
	runner := newRunner(fetcher, sink)

	group := domain.FeedGroup{
		BaseName: "preorders",
		Artists:  []domain.Artist{bandcampArtist("One", "one.bandcamp.com")},
	}

	_, err := runner.Run(context.Background(), []domain.FeedGroup{group})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	parsed := parseFeed(t, sink, "preorders")
	if len(parsed.Items) != 1 || parsed.Items[0].Title != "No Releases Found" {
		t.Errorf("items = %+v, want only the diagnostic item once the pre-order is dropped", parsed.Items)
	}
}

func TestRun_IdenticalInputYieldsIdenticalOutput(t *testing.T) {
	pages := map[string]string{
		"https://one.bandcamp.com/music":       bandcampListing(2),
		"https://one.bandcamp.com/album/rec-1": bandcampDetail("2024-03-01"),
		"https://one.bandcamp.com/album/rec-2": bandcampDetail("2024-02-01"),
	}
	group := domain.FeedGroup{
		Title:    "Watchlist",
		BaseName: "watchlist",
		Artists:  []domain.Artist{bandcampArtist("One", "one.bandcamp.com")},
	}

	run := func() []byte {
		sink := newRecordingSink()
		runner := newRunner(&scriptedFetcher{pages: pages}, sink)
		if _, err := runner.Run(context.Background(), []domain.FeedGroup{group}); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return sink.feeds["watchlist"]
	}

	first := run()
	second := run()
	if string(first) != string(second) {
		t.Error("two runs over identical pages produced different feed bytes")
	}
}

func TestRun_GroupOrderPreservedInIndex(t *testing.T) {
	fetcher := &scriptedFetcher{pages: map[string]string{
		"https://one.bandcamp.com/music": quietPage,
		"https://two.bandcamp.com/music": quietPage,
	}}
	sink := newRecordingSink()
	runner := newRunner(fetcher, sink)

	groups := []domain.FeedGroup{
		{BaseName: "beta", Artists: []domain.Artist{bandcampArtist("One", "one.bandcamp.com")}},
		{BaseName: "alpha", Artists: []domain.Artist{bandcampArtist("Two", "two.bandcamp.com")}},
	}

	_, err := runner.Run(context.Background(), groups)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(sink.index) != 2 {
		t.Fatalf("index length = %d, want 2", len(sink.index))
	}
	if sink.index[0].FileName != "beta.xml" || sink.index[1].FileName != "alpha.xml" {
		t.Errorf("index order = [%s, %s], want configuration order", sink.index[0].FileName, sink.index[1].FileName)
	}
}

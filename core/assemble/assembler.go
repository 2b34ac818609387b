// ABOUTME: Feed assembler aggregating items into one verified RSS document per group
// ABOUTME: Falls back to manual serialization when the library renderer drops items

package assemble

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gorilla/feeds"
	"github.com/mmcdole/gofeed"

	"releaseradar/core/domain"
	"releaseradar/core/errors"
	"releaseradar/core/interfaces"
)

const (
	// generatorName identifies this software in channel metadata.
	generatorName = "releaseradar"

	// defaultChannelLink keeps channels valid when a group supplies no
	// better home page.
	defaultChannelLink = "https://bandcamp.com"

	// diagnosticTitle is the single item emitted for groups with no real
	// releases, so readers never see an empty channel.
	diagnosticTitle = "No Releases Found"
)

// Options adjust assembly behavior per run.
type Options struct {
	// ManualRenderOnly skips the library renderer entirely.
	ManualRenderOnly bool
}

// Assembler turns a group's accumulated feed items into a written feed
// document. Rendering is verified; a renderer that silently drops items
// triggers the manual serializer.
type Assembler struct {
	deps interfaces.Dependencies
	sink interfaces.FeedSink
	opts Options
}

// New creates an assembler writing through sink.
func New(deps interfaces.Dependencies, sink interfaces.FeedSink, opts Options) *Assembler {
	return &Assembler{
		deps: deps,
		sink: sink,
		opts: opts,
	}
}

// Publish assembles the group document and writes it through the sink.
func (a *Assembler) Publish(ctx context.Context, group domain.FeedGroup, items []domain.FeedItem) (interfaces.FeedRef, error) {
	xmlBytes, count, err := a.Assemble(group, items)
	if err != nil {
		return interfaces.FeedRef{}, err
	}

	return a.sink.WriteFeed(ctx, group.BaseName, xmlBytes, channelTitle(group), count)
}

// Assemble sorts, backfills the diagnostic item, renders, and verifies.
// The returned count is the number of items in the final document.
func (a *Assembler) Assemble(group domain.FeedGroup, items []domain.FeedItem) ([]byte, int, error) {
	items = a.prepare(items)

	if !a.opts.ManualRenderOnly {
		xmlBytes, err := a.renderPrimary(group, items)
		if err != nil {
			a.deps.Logger.Warn("feed renderer failed, using manual serializer", map[string]interface{}{
				"group": group.BaseName,
				"error": err.Error(),
			})
		} else if verifyErr := verifyRendered(xmlBytes, len(items)); verifyErr != nil {
			a.deps.Logger.Warn("rendered feed failed verification, using manual serializer", map[string]interface{}{
				"group": group.BaseName,
				"error": verifyErr.Error(),
			})
		} else {
			return xmlBytes, len(items), nil
		}
	}

	xmlBytes := renderManual(channelTitle(group), channelDescription(group), items, a.deps.Clock.Now())
	if err := verifyRendered(xmlBytes, len(items)); err != nil {
		return nil, 0, &errors.AssemblyError{Group: group.BaseName, Reason: err.Error()}
	}

	return xmlBytes, len(items), nil
}

// prepare drops items missing a title or link, sorts newest-first (stable,
// so insertion order breaks ties) and guarantees at least one item.
func (a *Assembler) prepare(items []domain.FeedItem) []domain.FeedItem {
	sorted := make([]domain.FeedItem, 0, len(items))
	for _, item := range items {
		if !item.IsValid() {
			a.deps.Logger.Warn("skipping feed item without title or link", map[string]interface{}{
				"title": item.Title,
				"link":  item.Link,
			})
			continue
		}
		sorted = append(sorted, item)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Published.After(sorted[j].Published)
	})

	if len(sorted) == 0 {
		sorted = append(sorted, domain.FeedItem{
			Title:       diagnosticTitle,
			Link:        defaultChannelLink,
			Description: "No releases could be extracted for this group during the latest run.",
			Published:   a.deps.Clock.Now(),
		})
	}

	return sorted
}

// renderPrimary builds the document with the feed library.
func (a *Assembler) renderPrimary(group domain.FeedGroup, items []domain.FeedItem) ([]byte, error) {
	now := a.deps.Clock.Now()

	feed := &feeds.Feed{
		Title:       channelTitle(group),
		Link:        &feeds.Link{Href: defaultChannelLink},
		Description: channelDescription(group),
		Created:     now,
		Updated:     now,
	}

	for _, item := range items {
		feedItem := &feeds.Item{
			Title:       item.Title,
			Link:        &feeds.Link{Href: item.Link},
			Description: item.Description,
			Id:          item.Link,
			IsPermaLink: "true",
			Created:     item.Published,
		}

		if item.AuthorName != "" {
			feedItem.Author = &feeds.Author{Name: item.AuthorName}
		}

		if item.ImageURL != "" {
			feedItem.Enclosure = &feeds.Enclosure{
				Url:    item.ImageURL,
				Type:   imageMIME(item.ImageURL),
				Length: "0",
			}
		}

		feed.Items = append(feed.Items, feedItem)
	}

	rssFeed := (&feeds.Rss{Feed: feed}).RssFeed()
	rssFeed.Generator = generatorName

	rendered, err := feeds.ToXML(rssFeed)
	if err != nil {
		return nil, err
	}

	return []byte(rendered), nil
}

// verifyRendered checks the document really carries its items: the raw
// marker first, then a full parse-back with an independent reader.
func verifyRendered(xmlBytes []byte, wantItems int) error {
	if !bytes.Contains(xmlBytes, []byte("<item")) {
		return fmt.Errorf("no item elements in rendered output")
	}

	parsed, err := gofeed.NewParser().ParseString(string(xmlBytes))
	if err != nil {
		return fmt.Errorf("rendered output did not parse back: %w", err)
	}

	if len(parsed.Items) != wantItems {
		return fmt.Errorf("rendered output carries %d items, want %d", len(parsed.Items), wantItems)
	}

	return nil
}

func channelTitle(group domain.FeedGroup) string {
	if group.Title != "" {
		return group.Title
	}
	return group.BaseName
}

func channelDescription(group domain.FeedGroup) string {
	if group.Description != "" {
		return group.Description
	}
	return "Latest releases from followed artists"
}

// imageMIME guesses the enclosure type from the image URL extension.
func imageMIME(imageURL string) string {
	lower := strings.ToLower(imageURL)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

package extract

import (
	"testing"

	"releaseradar/core/domain"
)

func genericArtist(max int) domain.Artist {
	return domain.Artist{Name: "Fog Census", URL: "https://fogcensus.com/news", MaxReleases: max}
}

func TestGenericExtract_KeywordInTextOrURL(t *testing.T) {
	page := `<html><body>
		<a href="/merch">Shirts and Posters</a>
		<a href="/2024/new-album-out">Glass Rivers Is Here</a>
		<a href="/posts/tour-dates">Tour Dates</a>
		<a href="/listen/9">Full Song Stream</a>
	</body></html>`

	candidates, err := (&GenericExtractor{}).Extract(page, genericArtist(5))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2", len(candidates))
	}
	if candidates[0].Title != "Glass Rivers Is Here" {
		t.Errorf("first Title = %q, want the URL keyword match", candidates[0].Title)
	}
	if candidates[0].URL != "https://fogcensus.com/2024/new-album-out" {
		t.Errorf("first URL = %q, want absolutized", candidates[0].URL)
	}
	if candidates[1].Title != "Full Song Stream" {
		t.Errorf("second Title = %q, want the text keyword match", candidates[1].Title)
	}
}

func TestGenericExtract_TitleLengthBounds(t *testing.T) {
	longTitle := "This Release Title Runs Far Past Any Plausible Length For A Real Record And Keeps Going Until Rejected"

	page := `<html><body>
		<a href="/release/1">EP</a>
		<a href="/release/2">` + longTitle + `</a>
		<a href="/release/3">Hymn</a>
	</body></html>`

	candidates, err := (&GenericExtractor{}).Extract(page, genericArtist(5))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(candidates) != 1 || candidates[0].Title != "Hymn" {
		t.Errorf("candidates = %+v, want only the four-character title", candidates)
	}
}

func TestGenericExtract_DedupByURLOrTitle(t *testing.T) {
	page := `<html><body>
		<a href="/music/solstice">Solstice LP</a>
		<a href="/music/solstice?ref=footer">Solstice LP</a>
		<a href="/music/solstice">Solstice (alternate link text)</a>
	</body></html>`

	candidates, err := (&GenericExtractor{}).Extract(page, genericArtist(5))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("len(candidates) = %d, want 1 after URL-or-title dedup", len(candidates))
	}
	if candidates[0].Title != "Solstice LP" {
		t.Errorf("Title = %q, want first occurrence", candidates[0].Title)
	}
}

func TestGenericExtract_CapsAtThreeMatches(t *testing.T) {
	page := `<html><body>
		<a href="/release/1">Winter Song</a>
		<a href="/release/2">Spring Song</a>
		<a href="/release/3">Summer Song</a>
		<a href="/release/4">Autumn Song</a>
	</body></html>`

	candidates, err := (&GenericExtractor{}).Extract(page, genericArtist(10))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(candidates) != 3 {
		t.Errorf("len(candidates) = %d, want the hard cap of 3", len(candidates))
	}
}

func TestGenericExtract_MaxReleasesBelowCap(t *testing.T) {
	page := `<html><body>
		<a href="/release/1">Winter Song</a>
		<a href="/release/2">Spring Song</a>
		<a href="/release/3">Summer Song</a>
	</body></html>`

	candidates, err := (&GenericExtractor{}).Extract(page, genericArtist(2))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(candidates) != 2 {
		t.Errorf("len(candidates) = %d, want MaxReleases to win below the cap", len(candidates))
	}
}

func TestGenericExtract_NoMatches(t *testing.T) {
	page := `<html><body>
		<a href="/merch">Shirts</a>
		<a href="/contact">Contact</a>
	</body></html>`

	candidates, err := (&GenericExtractor{}).Extract(page, genericArtist(5))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(candidates) != 0 {
		t.Errorf("candidates = %+v, want none", candidates)
	}
}

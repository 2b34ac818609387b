// ABOUTME: Feed group document loading from JSON files on disk
// ABOUTME: Falls back to writing and using a built-in default document when none exist

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"releaseradar/core/domain"
	"releaseradar/core/errors"
)

// DefaultGroupFile is the document written when the config directory holds
// no usable group documents. Its base name fixes the output feed name.
const DefaultGroupFile = "bandcamp_releases.json"

// defaultGroup mirrors the single-document setup the project started with.
// The placeholder artist is meant to be replaced by the user.
func defaultGroup() domain.FeedGroup {
	return domain.FeedGroup{
		Title:       "Bandcamp Releases RSS",
		Description: "Latest releases from followed Bandcamp artists",
		Artists: []domain.Artist{
			{
				Name:        "Artist Name",
				URL:         "https://artistname.bandcamp.com/music",
				MaxReleases: domain.DefaultMaxReleases,
			},
		},
		BaseName: strings.TrimSuffix(DefaultGroupFile, ".json"),
	}
}

// LoadGroups reads every *.json group document under dir, in file name
// order. Documents that cannot be read or parsed are reported as warnings
// and skipped. When no document loads at all, a built-in default document
// is written to dir and used instead; err is non-nil only when that last
// resort also fails.
func LoadGroups(dir string) (groups []domain.FeedGroup, warnings []error, err error) {
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		warnings = append(warnings, &errors.ConfigError{Path: dir, Err: readErr})
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		group, loadErr := loadGroupFile(path)
		if loadErr != nil {
			warnings = append(warnings, loadErr)
			continue
		}
		groups = append(groups, group)
	}

	if len(groups) > 0 {
		return groups, warnings, nil
	}

	fallback := defaultGroup()
	if writeErr := writeDefaultGroup(dir, fallback); writeErr != nil {
		warnings = append(warnings, &errors.ConfigError{Path: filepath.Join(dir, DefaultGroupFile), Err: writeErr})
		return nil, warnings, writeErr
	}

	return []domain.FeedGroup{fallback}, warnings, nil
}

func loadGroupFile(path string) (domain.FeedGroup, error) {
	var group domain.FeedGroup

	data, err := os.ReadFile(path)
	if err != nil {
		return group, &errors.ConfigError{Path: path, Err: err}
	}

	if err := json.Unmarshal(data, &group); err != nil {
		return group, &errors.ConfigError{Path: path, Err: err}
	}

	group.BaseName = strings.TrimSuffix(filepath.Base(path), ".json")
	for i := range group.Artists {
		group.Artists[i].Normalize()
	}

	if err := group.Validate(); err != nil {
		return group, &errors.ConfigError{Path: path, Err: err}
	}

	return group, nil
}

func writeDefaultGroup(dir string, group domain.FeedGroup) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(group, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, DefaultGroupFile), data, 0o644)
}

// ABOUTME: Filesystem feed sink writing one XML document per group plus an HTML index
// ABOUTME: Owns directory creation and naming so the pipeline never touches paths

package local

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"releaseradar/core/interfaces"
)

const indexFileName = "index.html"

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Release Feeds</title>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; padding: 0 1rem; }
li { margin: 0.4rem 0; }
.count { color: #666; font-size: 0.9rem; }
</style>
</head>
<body>
<h1>Release Feeds</h1>
<p>Generated {{.GeneratedAt.Format "Jan 2, 2006 15:04 MST"}}</p>
{{if .Feeds}}<ul>
{{range .Feeds}}<li><a href="{{.FileName}}">{{.Title}}</a> <span class="count">({{.ItemCount}} items)</span></li>
{{end}}</ul>
{{else}}<p>No feeds were generated in the last run.</p>
{{end}}</body>
</html>
`

var indexTmpl = template.Must(template.New("index").Parse(indexTemplate))

type indexData struct {
	GeneratedAt time.Time
	Feeds       []interfaces.FeedRef
}

// Sink implements the FeedSink interface on a local directory.
type Sink struct {
	outputDir string
	logger    interfaces.Logger
	clock     interfaces.Clock
}

// NewLocalSink creates the output directory if needed and returns a sink
// writing into it.
func NewLocalSink(outputDir string, logger interfaces.Logger, clock interfaces.Clock) (*Sink, error) {
	if outputDir == "" {
		return nil, errors.New("output directory cannot be empty")
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Sink{
		outputDir: outputDir,
		logger:    logger,
		clock:     clock,
	}, nil
}

// WriteFeed persists one rendered document as <baseName>.xml.
func (s *Sink) WriteFeed(ctx context.Context, baseName string, xml []byte, title string, itemCount int) (interfaces.FeedRef, error) {
	select {
	case <-ctx.Done():
		return interfaces.FeedRef{}, ctx.Err()
	default:
	}

	// Base names come from input file names; strip any path remnants
	// rather than trust them.
	fileName := filepath.Base(baseName) + ".xml"
	path := filepath.Join(s.outputDir, fileName)

	if err := os.WriteFile(path, xml, 0o644); err != nil {
		return interfaces.FeedRef{}, fmt.Errorf("failed to write feed %s: %w", fileName, err)
	}

	s.logger.Info("feed written", map[string]interface{}{
		"file":  fileName,
		"items": itemCount,
	})

	return interfaces.FeedRef{
		Title:     title,
		FileName:  fileName,
		ItemCount: itemCount,
	}, nil
}

// WriteIndex renders the HTML index enumerating all written feeds.
func (s *Sink) WriteIndex(ctx context.Context, refs []interfaces.FeedRef) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var buf bytes.Buffer
	data := indexData{
		GeneratedAt: s.clock.Now(),
		Feeds:       refs,
	}
	if err := indexTmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render index: %w", err)
	}

	path := filepath.Join(s.outputDir, indexFileName)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}

	s.logger.Info("index written", map[string]interface{}{
		"file":  indexFileName,
		"feeds": len(refs),
	})

	return nil
}

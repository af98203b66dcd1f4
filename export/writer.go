package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// WriteOptions configures where and how an export is written
type WriteOptions struct {
	// OutputDir is the directory to write files to
	OutputDir string

	// Overwrite allows overwriting existing files
	Overwrite bool

	// AddFrontMatter adds YAML front matter with the query and perspective
	AddFrontMatter bool
}

// WriteResult contains information about the written file
type WriteResult struct {
	Path  string
	Bytes int64
}

// ErrFileExists is returned when the target exists and Overwrite is off
var ErrFileExists = eris.New("file exists")

// Write writes doc into opts.OutputDir, creating the directory if needed
func Write(doc *Document, opts WriteOptions) (*WriteResult, error) {
	if doc == nil || doc.Filename == "" {
		return nil, eris.New("export: no document to write")
	}

	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, eris.Wrap(err, "export: create output directory")
	}

	path := filepath.Join(opts.OutputDir, doc.Filename)

	if !opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return nil, eris.Wrapf(ErrFileExists, "export: %s (use --overwrite to replace)", path)
		}
	}

	content := buildContent(doc, opts)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return nil, eris.Wrapf(err, "export: write %s", path)
	}

	return &WriteResult{Path: path, Bytes: int64(len(content))}, nil
}

// buildContent prepends optional front matter and ensures a trailing newline
func buildContent(doc *Document, opts WriteOptions) string {
	var sb strings.Builder

	if opts.AddFrontMatter {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %q\n", "PRISM Analysis"))
		sb.WriteString(fmt.Sprintf("query: %q\n", doc.Query))
		if doc.Perspective != "" {
			sb.WriteString(fmt.Sprintf("perspective: %s\n", doc.Perspective))
		}
		sb.WriteString(fmt.Sprintf("generated: %s\n", doc.Generated.Format(time.RFC3339)))
		sb.WriteString("---\n\n")
	}

	sb.WriteString(doc.Content)

	content := sb.String()
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content
}

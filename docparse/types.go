// Package docparse extracts plain text from PDF and image documents using the
// Upstage Document Parse API.
package docparse

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
)

// Result is the text recovered from a document
type Result struct {
	Text     string `json:"text"`
	FileName string `json:"file_name"`

	// Source names the response field the text came from, e.g. "content.html"
	Source string `json:"source"`
}

// Extractor turns document bytes into text
type Extractor interface {
	Extract(ctx context.Context, fileName string, data []byte) (*Result, error)
}

// Response field names the text can be recovered from
const (
	SourceContentHTML     = "content.html"
	SourceContentText     = "content.text"
	SourceContentMarkdown = "content.markdown"
	SourceContent         = "content"
	SourceText            = "text"
	SourceElements        = "elements"
	SourcePages           = "pages"
	SourceHTML            = "html"
	SourceMarkdown        = "markdown"
)

// mimeTypes maps supported extensions (without the dot) to content types
var mimeTypes = map[string]string{
	"pdf":  "application/pdf",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
}

// SupportedExtensions returns the accepted file extensions, sorted
func SupportedExtensions() []string {
	exts := make([]string, 0, len(mimeTypes))
	for ext := range mimeTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// extension returns the lowercased extension of name without the dot
func extension(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// MIMEType returns the content type for fileName and whether it is supported
func MIMEType(fileName string) (string, bool) {
	mt, ok := mimeTypes[extension(fileName)]
	return mt, ok
}

// IsSupported reports whether fileName has an accepted extension
func IsSupported(fileName string) bool {
	_, ok := MIMEType(fileName)
	return ok
}

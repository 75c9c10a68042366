// Package catalog reads course catalog documents from files or URLs.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"advising/internal/model"
)

// maxDocumentSize bounds a catalog document. Larger documents are rejected
// rather than cut short.
var maxDocumentSize int64 = 4 << 20

// ErrTooLarge is returned for documents over maxDocumentSize.
var ErrTooLarge = errors.New("catalog document too large")

// Format is the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Entry is one course in a catalog document.
type Entry struct {
	Code    string `json:"code" yaml:"code"`
	Title   string `json:"title" yaml:"title"`
	Credits int    `json:"credits" yaml:"credits"`
}

// Decode parses a catalog document. Validation happens at import time.
func Decode(r io.Reader, format Format) ([]model.Course, error) {
	var entries []Entry
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&entries); err != nil && err != io.EOF {
			return nil, fmt.Errorf("parse yaml catalog: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&entries); err != nil {
			return nil, fmt.Errorf("parse json catalog: %w", err)
		}
	}
	return ToCourses(entries), nil
}

// ToCourses converts entries to unsaved courses.
func ToCourses(entries []Entry) []model.Course {
	courses := make([]model.Course, 0, len(entries))
	for _, e := range entries {
		courses = append(courses, model.Course{Code: e.Code, Title: e.Title, Credits: e.Credits})
	}
	return courses
}

// FormatOf guesses the format from a file name or URL path.
func FormatOf(name string) Format {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads a catalog from an http(s) URL or a local path.
func Load(ctx context.Context, client *http.Client, source string) ([]model.Course, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fetch(ctx, client, source)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return decodeBounded(f, FormatOf(source))
}

// decodeBounded reads at most maxDocumentSize bytes and refuses anything longer.
func decodeBounded(r io.Reader, format Format) ([]model.Course, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if int64(len(data)) > maxDocumentSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, maxDocumentSize)
	}
	return Decode(bytes.NewReader(data), format)
}

func fetch(ctx context.Context, client *http.Client, url string) ([]model.Course, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog source returned status %d", resp.StatusCode)
	}

	format := FormatOf(url)
	if strings.Contains(resp.Header.Get("Content-Type"), "yaml") {
		format = FormatYAML
	}
	return decodeBounded(resp.Body, format)
}

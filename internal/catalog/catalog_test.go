package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advising/internal/model"
)

const jsonCatalog = `[{"code":"CSC101","title":"Intro to Computing","credits":3},{"code":"MTH101","title":"Algebra","credits":4}]`

const yamlCatalog = `
- code: CSC101
  title: Intro to Computing
  credits: 3
- code: MTH101
  title: Algebra
  credits: 4
`

var wantCourses = []model.Course{
	{Code: "CSC101", Title: "Intro to Computing", Credits: 3},
	{Code: "MTH101", Title: "Algebra", Credits: 4},
}

func TestDecode(t *testing.T) {
	got, err := Decode(strings.NewReader(jsonCatalog), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, wantCourses, got)

	got, err = Decode(strings.NewReader(yamlCatalog), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, wantCourses, got)

	_, err = Decode(strings.NewReader("{not json"), FormatJSON)
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"catalog.json":                     FormatJSON,
		"catalog.YAML":                     FormatYAML,
		"/srv/catalog.yml":                 FormatYAML,
		"https://example.com/c.yaml?raw=1": FormatYAML,
		"https://example.com/catalog":      FormatJSON,
	}
	for name, want := range tests {
		assert.Equal(t, want, FormatOf(name), name)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlCatalog), 0o600))

	got, err := Load(context.Background(), nil, path)
	require.NoError(t, err)
	assert.Equal(t, wantCourses, got)

	_, err = Load(context.Background(), nil, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoad_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/catalog":
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write([]byte(yamlCatalog))
		case "/catalog.json":
			_, _ = w.Write([]byte(jsonCatalog))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	got, err := Load(context.Background(), srv.Client(), srv.URL+"/catalog")
	require.NoError(t, err)
	assert.Equal(t, wantCourses, got)

	got, err = Load(context.Background(), srv.Client(), srv.URL+"/catalog.json")
	require.NoError(t, err)
	assert.Equal(t, wantCourses, got)

	_, err = Load(context.Background(), srv.Client(), srv.URL+"/gone")
	assert.Error(t, err)
}

func TestLoad_RejectsOversizedDocuments(t *testing.T) {
	limit := maxDocumentSize
	maxDocumentSize = int64(len(yamlCatalog)) - 1
	t.Cleanup(func() { maxDocumentSize = limit })

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlCatalog), 0o600))
	_, err := Load(context.Background(), nil, path)
	assert.ErrorIs(t, err, ErrTooLarge)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(yamlCatalog))
	}))
	defer srv.Close()
	_, err = Load(context.Background(), srv.Client(), srv.URL+"/catalog")
	assert.ErrorIs(t, err, ErrTooLarge)

	maxDocumentSize = int64(len(yamlCatalog))
	got, err := Load(context.Background(), nil, path)
	require.NoError(t, err)
	assert.Equal(t, wantCourses, got)
}

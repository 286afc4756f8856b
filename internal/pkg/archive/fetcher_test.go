package archive

import (
	"archive/tar"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func buildArchive(t *testing.T, root string, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     root + "/",
		Typeflag: tar.TypeDir,
		Mode:     0755,
	}))
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     root + "/" + name,
			Typeflag: tar.TypeReg,
			Mode:     0644,
			Size:     int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func serveArchive(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/gzip")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

const goDoc = `{
	"metadata": {
		"title": "Awesome Go",
		"description": "Curated Go packages",
		"last_updated": 1700000000,
		"source_repository": "hub/awesome-go"
	},
	"items": [
		{
			"title": "Web Frameworks",
			"items": [
				{
					"title": "gin",
					"repo_info": {"owner": "gin-gonic", "repo": "gin", "stars": 50000, "language": "Go"}
				}
			]
		}
	]
}`

func TestFetchExtractsDocuments(t *testing.T) {
	body := buildArchive(t, "data-export-abc123", map[string]string{
		"lists/go.json": goDoc,
		"README.md":     "not json",
	})
	srv := serveArchive(t, body)

	f := NewFetcher(srv.URL, 5*time.Second, 1, zap.NewNop())
	docs, err := f.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, docs, 1)
	doc, ok := docs["go"]
	require.True(t, ok, "registry key derived from source_repository")
	assert.Equal(t, "Awesome Go", doc.Metadata.Title)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "Web Frameworks", doc.Items[0].Title)
	require.Len(t, doc.Items[0].Items, 1)
	require.NotNil(t, doc.Items[0].Items[0].RepoInfo)
	assert.Equal(t, 50000, doc.Items[0].Items[0].RepoInfo.Stars)
}

func TestFetchSkipsMalformedDocuments(t *testing.T) {
	body := buildArchive(t, "snapshot", map[string]string{
		"go.json":      goDoc,
		"broken.json":  "{not json",
		"partial.json": `{"metadata": {"title": "x", "source_repository": "a/b"}}`,
	})
	srv := serveArchive(t, body)

	f := NewFetcher(srv.URL, 5*time.Second, 1, zap.NewNop())
	docs, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestFetchFailsWhenNothingValid(t *testing.T) {
	body := buildArchive(t, "snapshot", map[string]string{
		"broken.json": "{not json",
	})
	srv := serveArchive(t, body)

	f := NewFetcher(srv.URL, 5*time.Second, 1, zap.NewNop())
	_, err := f.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchFailsOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher(srv.URL, 5*time.Second, 2, zap.NewNop())
	_, err := f.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchFailsOnCorruptArchive(t *testing.T) {
	srv := serveArchive(t, []byte("definitely not gzip"))

	f := NewFetcher(srv.URL, 5*time.Second, 1, zap.NewNop())
	_, err := f.Fetch(context.Background())
	assert.Error(t, err)
}

func TestRegistryKey(t *testing.T) {
	tests := []struct {
		source string
		key    string
	}{
		{"hub/awesome-go", "go"},
		{"someone/awesome-python", "python"},
		{"org/selfhosted", "selfhosted"},
		{"awesome-rust", "rust"},
	}
	for _, tt := range tests {
		m := Metadata{SourceRepository: tt.source}
		assert.Equal(t, tt.key, m.RegistryKey(), tt.source)
	}
}

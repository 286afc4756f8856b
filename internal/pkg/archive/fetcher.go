package archive

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// validateConcurrency bounds parallel document decoding.
const validateConcurrency = 4

// Fetcher downloads the registry snapshot archive and extracts the
// per-registry documents. It never persists anything.
type Fetcher struct {
	client   *http.Client
	url      string
	attempts uint
	logger   *zap.Logger
}

// NewFetcher builds a Fetcher for the given snapshot URL.
func NewFetcher(url string, timeout time.Duration, attempts int, logger *zap.Logger) *Fetcher {
	if attempts <= 0 {
		attempts = 1
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		url:      url,
		attempts: uint(attempts),
		logger:   logger,
	}
}

// rawDoc keeps pointer fields so the shape check can tell "absent" from
// "empty".
type rawDoc struct {
	Metadata *Metadata  `json:"metadata"`
	Items    *[]Section `json:"items"`
}

type archiveFile struct {
	name string
	data []byte
}

// Fetch downloads, extracts, parses and validates the snapshot. Malformed
// per-registry documents are skipped with a warning; failing to reach or
// decompress the archive at all is fatal.
func (f *Fetcher) Fetch(ctx context.Context) (map[string]*RegistryDoc, error) {
	body, err := f.download(ctx)
	if err != nil {
		return nil, fmt.Errorf("download archive: %w", err)
	}
	defer body.Close()

	files, err := f.extract(body)
	if err != nil {
		return nil, fmt.Errorf("extract archive: %w", err)
	}

	docs := make(map[string]*RegistryDoc, len(files))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(validateConcurrency)
	for _, file := range files {
		file := file
		g.Go(func() error {
			doc, key, ok := f.parseDoc(file)
			if !ok {
				return nil
			}
			mu.Lock()
			docs[key] = doc
			mu.Unlock()
			return nil
		})
	}
	// Workers only report via the map; Wait is for completion.
	_ = g.Wait()

	if len(docs) == 0 {
		return nil, errors.New("archive contained no valid registry documents")
	}

	f.logger.Info("archive fetched",
		zap.Int("files", len(files)),
		zap.Int("registries", len(docs)))
	return docs, nil
}

// download retrieves the archive body, retrying transient failures.
func (f *Fetcher) download(ctx context.Context) (io.ReadCloser, error) {
	var resp *http.Response
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
			if err != nil {
				return err
			}
			r, err := f.client.Do(req)
			if err != nil {
				return err
			}
			if r.StatusCode != http.StatusOK {
				r.Body.Close()
				return fmt.Errorf("unexpected status %d from %s", r.StatusCode, f.url)
			}
			resp = r
			return nil
		},
		retry.Attempts(f.attempts),
		retry.Delay(2*time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// extract walks the gzipped tarball and returns every JSON document found,
// with the variable leading snapshot directory stripped from file names.
func (f *Fetcher) extract(r io.Reader) ([]archiveFile, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	var (
		files []archiveFile
		root  string
	)
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		// Snapshot directory names vary (export tag, commit sha); the
		// first entry tells us the actual prefix.
		if root == "" {
			root = strings.SplitN(hdr.Name, "/", 2)[0]
		}

		if hdr.Typeflag != tar.TypeReg || !strings.HasSuffix(hdr.Name, ".json") {
			continue
		}

		name := strings.TrimPrefix(hdr.Name, root+"/")
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, err
		}
		files = append(files, archiveFile{name: name, data: data})
	}
	return files, nil
}

// parseDoc decodes and shape-checks one document. Invalid documents are
// logged and dropped without failing the fetch.
func (f *Fetcher) parseDoc(file archiveFile) (*RegistryDoc, string, bool) {
	var raw rawDoc
	if err := sonic.Unmarshal(file.data, &raw); err != nil {
		f.logger.Warn("skipping malformed registry document",
			zap.String("file", file.name), zap.Error(err))
		return nil, "", false
	}
	if raw.Metadata == nil || raw.Items == nil {
		f.logger.Warn("skipping registry document with missing metadata or items",
			zap.String("file", file.name))
		return nil, "", false
	}

	key := raw.Metadata.RegistryKey()
	if key == "" {
		f.logger.Warn("skipping registry document without source repository",
			zap.String("file", file.name))
		return nil, "", false
	}

	return &RegistryDoc{Metadata: *raw.Metadata, Items: *raw.Items}, key, true
}

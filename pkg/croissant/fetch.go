package croissant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/singleflight"
)

// Fetcher retrieves the payload behind a URL. Implementations exist for
// HTTP(S) and S3 content URLs; CachingFetcher wraps any of them with an
// on-disk cache.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error)
}

// HTTPFetcher fetches http:// and https:// URLs.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates an HTTP fetcher using http.DefaultClient.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{client: http.DefaultClient}
}

// Fetch performs a GET request and returns the response body. Any status
// other than 200 is an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch url: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s fetching %s", resp.Status, rawURL)
	}
	return resp.Body, nil
}

// S3Fetcher fetches s3://bucket/key URLs.
type S3Fetcher struct {
	client *s3.Client
}

// NewS3FetcherParams configures an S3Fetcher. All fields are optional;
// empty values fall back to the SDK's default credential and region
// resolution.
type NewS3FetcherParams struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewS3Fetcher creates a fetcher for datasets whose content URLs point
// into S3-compatible object storage.
func NewS3Fetcher(ctx context.Context, params NewS3FetcherParams) (*S3Fetcher, error) {
	opts := []func(*config.LoadOptions) error{}
	if params.Region != "" {
		opts = append(opts, config.WithRegion(params.Region))
	}
	if params.Endpoint != "" {
		opts = append(opts, config.WithBaseEndpoint(params.Endpoint))
	}
	if params.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(params.AccessKey, params.SecretKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return &S3Fetcher{client: client}, nil
}

// Fetch streams the object at an s3://bucket/key URL.
func (f *S3Fetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}
	if u.Scheme != "s3" {
		return nil, fmt.Errorf("unsupported scheme %q for s3 fetcher", u.Scheme)
	}
	result, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.Host),
		Key:    aws.String(strings.TrimPrefix(u.Path, "/")),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", rawURL, err)
	}
	return result.Body, nil
}

// SchemeFetcher routes fetches to a per-scheme fetcher.
type SchemeFetcher struct {
	fetchers map[string]Fetcher
}

// NewSchemeFetcher creates a router with HTTP(S) preconfigured.
func NewSchemeFetcher() *SchemeFetcher {
	httpFetcher := NewHTTPFetcher()
	return &SchemeFetcher{
		fetchers: map[string]Fetcher{
			"http":  httpFetcher,
			"https": httpFetcher,
		},
	}
}

// Register installs a fetcher for a URL scheme, replacing any previous one.
func (f *SchemeFetcher) Register(scheme string, fetcher Fetcher) {
	f.fetchers[scheme] = fetcher
}

// Fetch dispatches to the fetcher registered for the URL's scheme.
func (f *SchemeFetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}
	fetcher, ok := f.fetchers[u.Scheme]
	if !ok {
		return nil, fmt.Errorf("no fetcher registered for scheme %q", u.Scheme)
	}
	return fetcher.Fetch(ctx, rawURL)
}

// CachingFetcher stores every fetched payload on disk and serves repeat
// fetches from the cache. Concurrent fetches of the same URL are
// collapsed into a single download.
type CachingFetcher struct {
	next  Fetcher
	dir   string
	group singleflight.Group
}

// NewCachingFetcher wraps next with an on-disk cache rooted at dir.
func NewCachingFetcher(next Fetcher, dir string) *CachingFetcher {
	return &CachingFetcher{next: next, dir: dir}
}

// Fetch returns the cached payload for rawURL, downloading it first if
// needed.
func (f *CachingFetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	path := filepath.Join(f.dir, cacheKey(rawURL))

	if file, err := os.Open(path); err == nil {
		return file, nil
	}

	_, err, _ := f.group.Do(path, func() (any, error) {
		if _, err := os.Stat(path); err == nil {
			return nil, nil
		}
		return nil, f.download(ctx, rawURL, path)
	})
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// download writes the payload to a temporary file and moves it into
// place, so a partial download never shows up as a cache entry.
func (f *CachingFetcher) download(ctx context.Context, rawURL, path string) error {
	body, err := f.next.Fetch(ctx, rawURL)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(f.dir, "download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close cache entry: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

func cacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}

// DefaultCacheDir returns the per-user dataset cache directory.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "fedigraph")
}

// ClearCache deletes the cache directory and everything under it.
func ClearCache(dir string) error {
	if dir == "" {
		dir = DefaultCacheDir()
	}
	return os.RemoveAll(dir)
}

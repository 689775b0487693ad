package classify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultHubURL is the model hub the job-role artifacts are published on.
	DefaultHubURL = "https://huggingface.co"
	// DefaultJobRoleRepo is the repository holding the job-role artifacts.
	DefaultJobRoleRepo = "habib-ashraf/resume-job-classifier"
	// DefaultCacheDir is where downloaded artifacts are kept between runs.
	DefaultCacheDir = "./cache"

	maxArtifactBytes = 256 << 20
)

// ArtifactStore fetches classifier artifacts by name.
type ArtifactStore interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Invalidator is implemented by stores that keep local copies which can be discarded.
type Invalidator interface {
	Invalidate(name string) error
}

// ObjectGetter reads objects by key.
type ObjectGetter interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// FSStore reads artifacts from a filesystem.
type FSStore struct {
	FS fs.FS
}

// Fetch implements ArtifactStore.
func (s FSStore) Fetch(_ context.Context, name string) ([]byte, error) {
	return fs.ReadFile(s.FS, filepath.ToSlash(name))
}

// HTTPStore downloads artifacts from a model hub using the
// {base}/{repo}/resolve/main/{file} layout.
type HTTPStore struct {
	BaseURL   string
	Repo      string
	Client    *http.Client
	RetryWait time.Duration
}

// NewHTTPStore creates a hub store for repo with a bounded request timeout.
func NewHTTPStore(baseURL, repo string, timeout time.Duration) *HTTPStore {
	if baseURL == "" {
		baseURL = DefaultHubURL
	}
	if repo == "" {
		repo = DefaultJobRoleRepo
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPStore{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Repo:      strings.Trim(repo, "/"),
		Client:    &http.Client{Timeout: timeout},
		RetryWait: time.Second,
	}
}

// URL returns the download URL of an artifact.
func (s *HTTPStore) URL(name string) string {
	return fmt.Sprintf("%s/%s/resolve/main/%s", s.BaseURL, s.Repo, name)
}

// Fetch implements ArtifactStore. Server errors and transport failures are retried once;
// client errors are not.
func (s *HTTPStore) Fetch(ctx context.Context, name string) ([]byte, error) {
	url := s.URL(name)
	var data []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		resp, err := s.Client.Do(req)
		if err != nil {
			return fmt.Errorf("download %s: %w", url, err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("download %s: status %d", url, resp.StatusCode)
			if resp.StatusCode < http.StatusInternalServerError {
				return backoff.Permanent(err)
			}
			return err
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxArtifactBytes))
		if err != nil {
			return fmt.Errorf("read %s: %w", url, err)
		}
		data = body
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(s.RetryWait), 1), ctx)
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("artifact", name).Dur("retry_in", wait).Msg("artifact download failed, retrying")
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, err
	}
	return data, nil
}

// ObjectStoreSource reads artifacts from an object store under an optional key prefix.
type ObjectStoreSource struct {
	Store  ObjectGetter
	Prefix string
}

// Fetch implements ArtifactStore.
func (s ObjectStoreSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	key := name
	if s.Prefix != "" {
		key = strings.TrimRight(s.Prefix, "/") + "/" + name
	}
	return s.Store.Get(ctx, key)
}

// CachedStore keeps a disk copy of every artifact fetched from Inner. Cache files are named
// {namespace with "/" replaced by "_"}_{artifact}.
type CachedStore struct {
	Inner     ArtifactStore
	Dir       string
	Namespace string
}

// NewCachedStore wraps inner with a disk cache in dir.
func NewCachedStore(inner ArtifactStore, dir, namespace string) *CachedStore {
	if dir == "" {
		dir = DefaultCacheDir
	}
	return &CachedStore{Inner: inner, Dir: dir, Namespace: namespace}
}

// Path returns the cache file path of an artifact.
func (s *CachedStore) Path(name string) string {
	file := filepath.Base(name)
	if s.Namespace != "" {
		file = strings.ReplaceAll(s.Namespace, "/", "_") + "_" + file
	}
	return filepath.Join(s.Dir, file)
}

// Fetch implements ArtifactStore.
func (s *CachedStore) Fetch(ctx context.Context, name string) ([]byte, error) {
	path := s.Path(name)
	data, err := os.ReadFile(path)
	if err == nil && len(data) > 0 {
		log.Debug().Str("path", path).Msg("using cached artifact")
		return data, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Str("path", path).Msg("unreadable cached artifact, fetching again")
	}

	data, err = s.Inner.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(path, data); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to cache artifact")
	}
	return data, nil
}

// Invalidate implements Invalidator.
func (s *CachedStore) Invalidate(name string) error {
	err := os.Remove(s.Path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".artifact-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

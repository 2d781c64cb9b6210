package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hashicorp/golang-lru/v2/expirable"

	apidogsync "github.com/akhelij/apidog-sync-mcp-server"
	"github.com/akhelij/apidog-sync-mcp-server/catalog"
)

// docInput represents the three ways a catalog document can be provided to
// a tool. Exactly one of File, URL, or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an exported catalog document on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an exported catalog document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline catalog document content (JSON or YAML)"`
}

// docCache is a session-scoped TTL'd LRU of decoded catalog documents.
// File inputs are keyed by (absolutePath, modTime), content inputs by a
// SHA-256 hash, URL inputs by the URL string. Cached documents are shared
// between calls; that is safe because no tool mutates a resolved document
// (the applier works on deep copies).
var docCache = expirable.NewLRU[string, *catalog.Document](cfg.CacheSize, nil, cfg.CacheTTL)

// makeCacheKey creates a cache key for the given input, or "" when the
// input should not be cached.
func makeCacheKey(s docInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:])
	case s.URL != "":
		return "url:" + s.URL
	default:
		return ""
	}
}

// resolve decodes the catalog document from whichever input was provided,
// using the session cache for all three input modes.
func (s docInput) resolve(ctx context.Context) (*catalog.Document, error) {
	count := 0
	if s.File != "" {
		count++
	}
	if s.URL != "" {
		count++
	}
	if s.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set APIDOG_SYNC_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
		if key != "" {
			if cached, ok := docCache.Get(key); ok {
				return cached, nil
			}
		}
	}

	var data []byte
	var err error
	switch {
	case s.File != "":
		data, err = os.ReadFile(s.File)
		if err != nil {
			return nil, fmt.Errorf("reading document file: %w", err)
		}
	case s.URL != "":
		data, err = fetchURL(ctx, s.URL)
		if err != nil {
			return nil, fmt.Errorf("fetching document URL: %w", err)
		}
	default:
		data = []byte(s.Content)
	}

	doc, err := catalog.Decode(data)
	if err != nil {
		return nil, err
	}

	if key != "" {
		docCache.Add(key, doc)
	}
	return doc, nil
}

// fetchURL retrieves a document over HTTP. Unless private IPs are allowed
// by configuration, the SSRF-safe client is used since the URL originates
// from an AI agent.
func fetchURL(ctx context.Context, url string) ([]byte, error) {
	client := http.DefaultClient
	if !cfg.AllowPrivateIPs {
		client = newSafeHTTPClient()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", apidogsync.UserAgent())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, cfg.MaxInlineSize))
}

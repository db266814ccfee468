package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/fivetwenty-io/fastly/pkg/fastly"
)

const cacheScopeLength = 16

// cacheScope identifies the account a cached body belongs to: the endpoint
// and the Fastly-Key value. The key itself is never stored.
func cacheScope(baseURL string, apiKey *fastly.APIKey) string {
	sum := sha256.Sum256([]byte(baseURL + "\x00" + apiKey.HeaderValue()))

	return hex.EncodeToString(sum[:])[:cacheScopeLength]
}

func (c *Client) cacheKey(urlPath string) string {
	return c.cacheScope + " " + http.MethodGet + " " + urlPath
}

// lookupCache returns a cached response for plain GETs, or nil.
func (c *Client) lookupCache(ctx context.Context, method, urlPath string, query url.Values) *Response {
	if c.cache == nil || method != http.MethodGet || len(query) > 0 {
		return nil
	}

	entry, err := c.cache.Get(ctx, c.cacheKey(urlPath))
	if err != nil {
		return nil
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("Cache hit", map[string]interface{}{"path": urlPath})
	}

	return &Response{
		StatusCode: http.StatusOK,
		Body:       entry.Data,
		Headers:    make(http.Header),
		Cached:     true,
	}
}

// storeCache records a successful plain GET, or invalidates after a
// successful write.
func (c *Client) storeCache(ctx context.Context, method, urlPath string, query url.Values, resp *Response) {
	if c.cache == nil {
		return
	}

	if isWrite(method) {
		c.invalidate(ctx, urlPath)

		return
	}

	if method != http.MethodGet || len(query) > 0 {
		return
	}

	err := c.cache.Set(ctx, c.cacheKey(urlPath), &fastly.CacheEntry{
		Data:      resp.Body,
		ExpiresAt: time.Now().Add(c.cacheTTL),
	})
	if err != nil && c.logger != nil {
		c.logger.Warn("Failed to cache response", map[string]interface{}{
			"path":  urlPath,
			"error": err.Error(),
		})
	}
}

// invalidate drops the written path and its ancestors. Activating or
// deactivating a version changes the active flag of every other version of
// the service, which cannot be addressed by key, so those writes clear the
// whole cache.
func (c *Client) invalidate(ctx context.Context, urlPath string) {
	if changesActiveVersion(urlPath) {
		err := c.cache.Clear(ctx)
		if err != nil && c.logger != nil {
			c.logger.Warn("Failed to clear cache", map[string]interface{}{
				"path":  urlPath,
				"error": err.Error(),
			})
		}

		return
	}

	current := strings.TrimSuffix(urlPath, "/")

	for current != "" && current != "/" && current != "." {
		_ = c.cache.Delete(ctx, c.cacheKey(current))
		current = path.Dir(current)
	}
}

func changesActiveVersion(urlPath string) bool {
	action := path.Base(urlPath)

	return (action == "activate" || action == "deactivate") &&
		path.Base(path.Dir(path.Dir(urlPath))) == "version"
}

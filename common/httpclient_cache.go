// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package common

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"sync"
	"sync/atomic"
	"time"

	"github.com/boxer32/waykeeper-brand-hub/monitoring"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func WrapHTTPClient(client *http.Client, wrap func(req *http.Request, next http.RoundTripper) (*http.Response, error)) {
	if client == nil {
		return
	}
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	client.Transport = roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return wrap(req, base)
	})
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// CacheTransport keeps successful GET responses in an expiring LRU.
// Responses larger than maxEntryBytes are passed through uncached and the
// oldest entries are evicted once the cached bytes would exceed maxTotalBytes.
type CacheTransport struct {
	cache         *expirable.LRU[string, []byte]
	maxEntryBytes int64
	maxTotalBytes int64

	mu         sync.Mutex
	totalBytes atomic.Int64
}

func NewCacheTransport(cacheSize int, expiration time.Duration, maxEntryBytes, maxTotalBytes int64) *CacheTransport {
	c := &CacheTransport{
		maxEntryBytes: maxEntryBytes,
		maxTotalBytes: maxTotalBytes,
	}
	c.cache = expirable.NewLRU[string, []byte](cacheSize, func(_ string, v []byte) {
		c.totalBytes.Add(-int64(len(v)))
	}, expiration)
	return c
}

func (c *CacheTransport) Len() int {
	return c.cache.Len()
}

// Bytes is the size of all cached responses.
func (c *CacheTransport) Bytes() int64 {
	return c.totalBytes.Load()
}

func (c *CacheTransport) add(key string, v []byte) {
	size := int64(len(v))
	if c.maxTotalBytes > 0 && size > c.maxTotalBytes {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// replacing a key does not call the eviction callback
	c.cache.Remove(key)
	for c.maxTotalBytes > 0 && c.totalBytes.Load()+size > c.maxTotalBytes {
		if _, _, ok := c.cache.RemoveOldest(); !ok {
			break
		}
	}
	c.totalBytes.Add(size)
	c.cache.Add(key, v)
}

func (c *CacheTransport) Handler() func(req *http.Request, next http.RoundTripper) (*http.Response, error) {
	return func(req *http.Request, next http.RoundTripper) (*http.Response, error) {
		if req.Method != http.MethodGet {
			return next.RoundTrip(req)
		}

		key := cacheKey(req)

		if val, ok := c.cache.Get(key); ok {
			slog.Debug("image cache hit", "url", req.URL.String())
			monitoring.ImageFetchCacheLookups.WithLabelValues("hit").Inc()
			resp, err := responseFromBytes(val, req)
			if err != nil {
				slog.Error("failed to read response from cache", "err", err)
				return nil, err
			}
			return resp, nil
		}
		monitoring.ImageFetchCacheLookups.WithLabelValues("miss").Inc()

		resp, err := next.RoundTrip(req)
		if err != nil {
			return resp, err
		}

		// only cache successful responses of a known, bounded size
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return resp, nil
		}
		if resp.ContentLength < 0 || (c.maxEntryBytes > 0 && resp.ContentLength > c.maxEntryBytes) {
			return resp, nil
		}

		v, err := httputil.DumpResponse(resp, true)
		if err != nil {
			slog.Error("failed to dump response", "err", err)
			return resp, nil
		}

		c.add(key, v)

		return responseFromBytes(v, req)
	}
}

func responseFromBytes(v []byte, req *http.Request) (*http.Response, error) {
	r := bufio.NewReader(bytes.NewReader(v))
	resp, err := http.ReadResponse(r, req)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp, nil
}

func cacheKey(req *http.Request) string {
	key := req.URL.String()

	// Include Authorization and Cookie headers if present
	auth := req.Header.Get("Authorization")
	cookie := req.Header.Get("Cookie")

	if auth != "" || cookie != "" {
		h := sha256.New()
		h.Write([]byte(key))
		h.Write([]byte(auth))
		h.Write([]byte(cookie))
		return fmt.Sprintf("%x", h.Sum(nil))
	}

	return key
}

// NewCachedHTTPClient returns an instrumented client whose GET responses are cached.
func NewCachedHTTPClient(cache *CacheTransport, timeout time.Duration) *http.Client {
	client := &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	WrapHTTPClient(client, cache.Handler())
	return client
}

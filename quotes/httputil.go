package quotes

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

// diskCache is an http.RoundTripper that stores successful GET responses on
// disk for the rest of the day. Quotes move, but not enough to justify
// hammering the provider on every command.
type diskCache struct {
	dir  string
	next http.RoundTripper
}

// newDailyCachingClient returns an http client caching GET responses under
// the user cache dir until midnight.
func newDailyCachingClient(appname string) *http.Client {
	dir, err := os.UserCacheDir()
	if err != nil {
		// No cache dir, no cache.
		return http.DefaultClient
	}
	dir = filepath.Join(dir, appname, time.Now().Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return http.DefaultClient
	}
	return &http.Client{
		Transport: &diskCache{dir: dir, next: http.DefaultTransport},
	}
}

func (c *diskCache) path(req *http.Request) string {
	sum := sha1.Sum([]byte(req.URL.String()))
	return filepath.Join(c.dir, fmt.Sprintf("%x", sum))
}

// RoundTrip implements the http.RoundTripper interface.
func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return c.next.RoundTrip(req)
	}
	path := c.path(req)
	if raw, err := os.ReadFile(path); err == nil {
		resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(raw)), req)
		if err == nil {
			return resp, nil
		}
		// Unreadable cache entry, refetch.
		os.Remove(path)
	}
	resp, err := c.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusOK {
		if raw, err := httputil.DumpResponse(resp, true); err == nil {
			if err := os.WriteFile(path, raw, 0644); err == nil {
				resp, err = http.ReadResponse(bufio.NewReader(bytes.NewReader(raw)), req)
				if err != nil {
					os.Remove(path)
					return c.next.RoundTrip(req)
				}
			}
		}
	}
	return resp, nil
}

// jwget GETs the url and decodes the JSON response body into result.
func jwget(client *http.Client, url string, result any) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

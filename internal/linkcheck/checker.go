// Package linkcheck verifies that catalog download links still resolve.
// Vendor CDN links rotate, so the verify command walks every stored URL
// and reports the dead ones.
package linkcheck

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"fwarchive/internal/catalog"
)

const userAgent = "fwarchive/0.1.0"

// Result is the outcome of probing one URL.
type Result struct {
	CanonicalKey string
	URL          string
	StatusCode   int
	OK           bool
	Detail       string
}

// Checker probes download URLs with HEAD requests, falling back to a
// ranged GET for servers that reject HEAD.
type Checker struct {
	client *resty.Client
}

func NewChecker(timeout time.Duration, retries int) *Checker {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetHeader("User-Agent", userAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
	return &Checker{client: client}
}

// Check probes one URL.
func (c *Checker) Check(ctx context.Context, url string) Result {
	result := Result{URL: url}
	if url == "" {
		result.Detail = "empty download url"
		return result
	}

	resp, err := c.client.R().SetContext(ctx).Head(url)
	if err != nil {
		result.Detail = err.Error()
		return result
	}
	status := resp.StatusCode()
	if status == http.StatusMethodNotAllowed || status == http.StatusForbidden {
		status, err = c.rangedGet(ctx, url)
		if err != nil {
			result.Detail = err.Error()
			return result
		}
	}

	result.StatusCode = status
	result.OK = status >= 200 && status < 400
	if !result.OK {
		result.Detail = fmt.Sprintf("status %d", status)
	}
	return result
}

// rangedGet asks for the first byte only so a probe never downloads a
// whole firmware artifact.
func (c *Checker) rangedGet(ctx context.Context, url string) (int, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Range", "bytes=0-0").
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.RawBody().Close()
	return resp.StatusCode(), nil
}

// CheckEntries probes every entry's download URL in order and returns
// one result per entry.
func (c *Checker) CheckEntries(ctx context.Context, entries []catalog.Entry) []Result {
	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		result := c.Check(ctx, entry.DownloadURL)
		result.CanonicalKey = entry.CanonicalKey
		results = append(results, result)
	}
	return results
}

// Broken filters results down to the failures.
func Broken(results []Result) []Result {
	var broken []Result
	for _, result := range results {
		if !result.OK {
			broken = append(broken, result)
		}
	}
	return broken
}

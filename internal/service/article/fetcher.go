package article

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Noooste/azuretls-client"
	"golang.org/x/net/html/charset"

	"repurpose/backend/internal/config"
	"repurpose/backend/internal/logger"
	"repurpose/backend/internal/network"
)

// ErrFetch is matched by every *FetchError.
var ErrFetch = errors.New("fetch failed")

// FetchError reports a failed article fetch. StatusCode is zero when no
// response was received (DNS, TLS, timeout).
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch article: HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch article: %v", e.Err)
	}
	return "failed to fetch article"
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// Page is a fetched HTML document. URL is the final URL after redirects.
type Page struct {
	URL  *url.URL
	Body []byte
}

// Fetcher downloads a page. Implementations do not retry.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Page, error)
}

// ChallengeSolver passes bot-protection interstitials and returns a cookie header value.
// IsPage matches every interstitial, including rejections that Solve refuses.
type ChallengeSolver interface {
	IsPage(body []byte) bool
	CachedCookie(host string) string
	Solve(ctx context.Context, body []byte, pageURL *url.URL, cookies []*http.Cookie) (string, error)
}

// NewFetcher returns the fetcher for the configured mode. solver may be nil.
func NewFetcher(cfg config.FetchConfig, factory *network.ClientFactory, solver ChallengeSolver) Fetcher {
	if cfg.Mode == config.FetchModeBrowser {
		return NewBrowserFetcher(factory, cfg.Timeout, cfg.MaxBytes)
	}
	return NewHTTPFetcher(factory.NewHTTPClient(cfg.Timeout), cfg.MaxBytes).WithSolver(solver)
}

// HTTPFetcher fetches pages with net/http.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
	solver   ChallengeSolver
}

func NewHTTPFetcher(client *http.Client, maxBytes int64) *HTTPFetcher {
	return &HTTPFetcher{client: client, maxBytes: maxBytes}
}

// WithSolver enables one solve-and-retry when a page turns out to be a challenge.
func (f *HTTPFetcher) WithSolver(solver ChallengeSolver) *HTTPFetcher {
	f.solver = solver
	return f
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	cookie := ""
	if f.solver != nil {
		if u, err := url.Parse(rawURL); err == nil {
			cookie = f.solver.CachedCookie(u.Host)
		}
	}

	page, resp, err := f.get(ctx, rawURL, cookie)
	if err != nil {
		return nil, err
	}
	if f.solver == nil || !f.solver.IsPage(page.Body) {
		return checkStatus(rawURL, page, resp)
	}

	logger.Info("bot challenge on article page", "module", "article", "action", "fetch", "resource", "page", "result", "challenge", "host", page.URL.Host)
	solved, err := f.solver.Solve(ctx, page.Body, page.URL, resp.Cookies())
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("bot challenge: %w", err)}
	}

	page, resp, err = f.get(ctx, rawURL, solved)
	if err != nil {
		return nil, err
	}
	if f.solver.IsPage(page.Body) {
		return nil, &FetchError{URL: rawURL, Err: errors.New("bot challenge persisted after solving")}
	}
	return checkStatus(rawURL, page, resp)
}

func checkStatus(rawURL string, page *Page, resp *http.Response) (*Page, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	return page, nil
}

// get reads the body regardless of status so challenge pages served with 4xx can be detected.
func (f *HTTPFetcher) get(ctx context.Context, rawURL, cookie string) (*Page, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, &FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", config.UserAgent)
	req.Header.Set("Accept", config.HTMLAccept)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	// Decode to UTF-8 using the Content-Type charset or <meta charset>.
	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		body = resp.Body
	}
	data, err := readLimited(body, f.maxBytes)
	if err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
		}
		return nil, nil, &FetchError{URL: rawURL, Err: err}
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}
	return &Page{URL: finalURL, Body: data}, resp, nil
}

// BrowserFetcher fetches pages through a Chrome-fingerprinted TLS session,
// for sites that reject non-browser clients.
type BrowserFetcher struct {
	factory  *network.ClientFactory
	timeout  time.Duration
	maxBytes int64
}

func NewBrowserFetcher(factory *network.ClientFactory, timeout time.Duration, maxBytes int64) *BrowserFetcher {
	return &BrowserFetcher{factory: factory, timeout: timeout, maxBytes: maxBytes}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	session := f.factory.NewAzureSession(f.timeout)
	defer session.Close()

	req := &azuretls.Request{
		Method: http.MethodGet,
		Url:    rawURL,
		OrderedHeaders: azuretls.OrderedHeaders{
			{"accept", config.HTMLAccept},
			{"accept-language", "en-US,en;q=0.9"},
			{"sec-ch-ua", config.ChromeSecChUa},
			{"sec-ch-ua-mobile", "?0"},
			{"sec-ch-ua-platform", `"Windows"`},
			{"sec-fetch-dest", "document"},
			{"sec-fetch-mode", "navigate"},
			{"sec-fetch-site", "none"},
			{"user-agent", config.ChromeUserAgent},
		},
	}
	req.SetContext(ctx)

	resp, err := session.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	if f.maxBytes > 0 && int64(len(resp.Body)) > f.maxBytes {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("response body exceeds %d bytes", f.maxBytes)}
	}

	finalURL := parsed
	if resp.Url != "" {
		if u, err := url.Parse(resp.Url); err == nil {
			finalURL = u
		}
	}
	return &Page{URL: finalURL, Body: resp.Body}, nil
}

// readLimited reads up to limit bytes from r and fails if the body is larger.
// A limit <= 0 reads without bound.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("response body exceeds %d bytes", limit)
	}
	return data, nil
}

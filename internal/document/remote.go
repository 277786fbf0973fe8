package document

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/anoncheck/anoncheck/internal/model"
	"github.com/anoncheck/anoncheck/internal/util"
	"github.com/anoncheck/anoncheck/internal/worker"
)

// Remote fetches a document over http(s). HTML responses reduce to
// their visible text; anything else is treated as plain text. Fetches
// honor robots.txt and per-host rate limits.
type Remote struct {
	rawURL     string
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
}

// NewRemote creates a remote document source.
func NewRemote(rawURL string, cfg *model.Config, limiter *worker.Limiter) *Remote {
	var robots *util.RobotsChecker
	if !cfg.HTTP.IgnoreRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	proxyFunc := util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)

	return &Remote{
		rawURL: rawURL,
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			Transport: &http.Transport{
				Proxy: proxyFunc,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  cfg.HTTP.MaxBodyBytes,
		robots:    robots,
		limiter:   limiter,
	}
}

// Kind identifies the container.
func (r *Remote) Kind() string { return "remote" }

// Name returns a human-readable subject derived from the URL path.
func (r *Remote) Name() string {
	parsed, err := url.Parse(r.rawURL)
	if err != nil {
		return r.rawURL
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]
	last = strings.ReplaceAll(last, "_", " ")
	last = strings.ReplaceAll(last, "-", " ")
	return last
}

// Paragraphs fetches the document and returns its text as a single
// paragraph.
func (r *Remote) Paragraphs(ctx context.Context) ([]string, error) {
	if r.robots != nil {
		allowed, _, err := r.robots.CanFetch(ctx, r.rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("robots.txt disallows fetching %s", r.rawURL)
		}
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, r.rawURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	log.Debug().
		Str("url", r.rawURL).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("fetched remote document")

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") || strings.Contains(contentType, "application/xhtml") {
		text, err := visibleText(string(body))
		if err != nil {
			return nil, err
		}
		if text == "" {
			return nil, nil
		}
		return []string{text}, nil
	}

	return splitParagraphs(string(body)), nil
}

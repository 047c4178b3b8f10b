// Package search finds and downloads reference images for a keyword. It is
// a collaborator of the CLI generation mode; the core pipeline only ever
// sees the local file paths this produces.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"

	"github.com/iconforge/iconforge/internal/log"
)

// Searcher resolves a keyword to local image file paths.
type Searcher interface {
	Search(ctx context.Context, keyword string) ([]string, error)
}

// Options configures a WebSearcher.
type Options struct {
	// BaseURL is the search page, with %s substituted by the escaped
	// keyword. Defaults to Bing image search.
	BaseURL string

	// UserAgent identifies the scraper.
	UserAgent string

	// MaxResults caps downloaded images per search.
	MaxResults int

	// PerSecond throttles outbound requests.
	PerSecond int

	// DownloadDir receives the images. Defaults to a temp directory.
	DownloadDir string
}

// WebSearcher scrapes an image search results page with colly and downloads
// the first matching images.
type WebSearcher struct {
	opts    Options
	limiter *rate.Limiter
	client  *http.Client
	logger  log.Logger
}

// NewWebSearcher creates a searcher. Zero option fields get defaults.
func NewWebSearcher(opts Options, logger log.Logger) *WebSearcher {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://www.bing.com/images/search?q=%s"
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "iconforge/1.0"
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 5
	}
	if opts.PerSecond <= 0 {
		opts.PerSecond = 2
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &WebSearcher{
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(opts.PerSecond), 1),
		client:  &http.Client{},
		logger:  logger,
	}
}

// Search implements Searcher. It returns the paths of downloaded images, at
// most MaxResults of them; an empty result with nil error means the page
// had no usable images.
func (s *WebSearcher) Search(ctx context.Context, keyword string) ([]string, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("search keyword is required")
	}

	dir := s.opts.DownloadDir
	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", "iconforge-refs-")
		if err != nil {
			return nil, fmt.Errorf("creating download directory: %w", err)
		}
	} else if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating download directory: %w", err)
	}

	var imageURLs []string
	c := colly.NewCollector(colly.UserAgent(s.opts.UserAgent))
	c.OnHTML("img[src]", func(e *colly.HTMLElement) {
		if len(imageURLs) >= s.opts.MaxResults {
			return
		}
		src := e.Request.AbsoluteURL(e.Attr("src"))
		if strings.HasPrefix(src, "http") {
			imageURLs = append(imageURLs, src)
		}
	})

	page := fmt.Sprintf(s.opts.BaseURL, url.QueryEscape(keyword))
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if err := c.Visit(page); err != nil {
		return nil, fmt.Errorf("fetching search results: %w", err)
	}
	c.Wait()

	var paths []string
	for i, imgURL := range imageURLs {
		if err := s.limiter.Wait(ctx); err != nil {
			return paths, err
		}
		path, err := s.download(ctx, imgURL, filepath.Join(dir, fmt.Sprintf("ref-%d.png", i+1)))
		if err != nil {
			s.logger.Debug("skipping reference image", "url", imgURL, "error", err)
			continue
		}
		paths = append(paths, path)
	}

	s.logger.Info("reference image search finished",
		"keyword", keyword, "found", len(imageURLs), "downloaded", len(paths))
	return paths, nil
}

func (s *WebSearcher) download(ctx context.Context, imgURL, dest string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imgURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return dest, nil
}

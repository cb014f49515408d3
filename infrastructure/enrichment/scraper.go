// Package enrichment holds the outbound side of the enrichment worker: a
// metadata scraper and a client for the portal API.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrNoMetadata is returned when the metadata source has no page for a movie
var ErrNoMetadata = errors.New("no metadata found")

// Selectors are the CSS selectors the scraper reads fields from
type Selectors struct {
	Director string
	Synopsis string
	Actors   string
}

// DefaultSelectors match schema.org-style markup
func DefaultSelectors() Selectors {
	return Selectors{
		Director: `[itemprop="director"] [itemprop="name"]`,
		Synopsis: `[itemprop="description"]`,
		Actors:   `[itemprop="actor"] [itemprop="name"]`,
	}
}

// Details is what the scraper could find about a movie
type Details struct {
	Director string
	Synopsis string
	Actors   []string
}

// IsEmpty reports whether nothing was found
func (d Details) IsEmpty() bool {
	return d.Director == "" && d.Synopsis == "" && len(d.Actors) == 0
}

// ScraperConfig configures a Scraper
type ScraperConfig struct {
	// URLTemplate is the page URL with {title} and {year} placeholders
	URLTemplate string
	Selectors   Selectors
	Timeout     time.Duration
}

// Scraper reads movie details from HTML pages. Calls go through a circuit
// breaker so an unavailable source fails fast.
type Scraper struct {
	cfg     ScraperConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewScraper creates a new scraper
func NewScraper(cfg ScraperConfig, client *http.Client, logger *zap.Logger) *Scraper {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "metadata-scraper",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		// A missing page is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNoMetadata)
		},
	})

	return &Scraper{
		cfg:     cfg,
		client:  client,
		breaker: breaker,
		logger:  logger,
	}
}

// PageURL fills the template for title and year
func (s *Scraper) PageURL(title string, year *int) string {
	y := ""
	if year != nil {
		y = strconv.Itoa(*year)
	}
	return strings.NewReplacer(
		"{title}", url.PathEscape(title),
		"{year}", y,
	).Replace(s.cfg.URLTemplate)
}

// Lookup fetches and parses the page for title and year
func (s *Scraper) Lookup(ctx context.Context, title string, year *int) (Details, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.fetch(ctx, s.PageURL(title, year))
	})
	if err != nil {
		return Details{}, err
	}
	return result.(Details), nil
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (Details, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Details{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return Details{}, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Details{}, ErrNoMetadata
	}
	if resp.StatusCode != http.StatusOK {
		return Details{}, fmt.Errorf("metadata source returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Details{}, fmt.Errorf("failed to parse page: %w", err)
	}

	d := Extract(doc.Selection, s.cfg.Selectors)
	s.logger.Debug("Metadata extracted",
		zap.String("url", pageURL),
		zap.Bool("director", d.Director != ""),
		zap.Int("actors", len(d.Actors)),
	)
	return d, nil
}

// Extract reads Details out of a parsed page
func Extract(doc *goquery.Selection, sel Selectors) Details {
	var d Details
	if sel.Director != "" {
		d.Director = strings.TrimSpace(doc.Find(sel.Director).First().Text())
	}
	if sel.Synopsis != "" {
		d.Synopsis = collapseSpace(doc.Find(sel.Synopsis).First().Text())
	}
	if sel.Actors != "" {
		seen := make(map[string]struct{})
		doc.Find(sel.Actors).Each(func(_ int, node *goquery.Selection) {
			name := strings.TrimSpace(node.Text())
			if name == "" {
				return
			}
			if _, dup := seen[name]; dup {
				return
			}
			seen[name] = struct{}{}
			d.Actors = append(d.Actors, name)
		})
	}
	return d
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

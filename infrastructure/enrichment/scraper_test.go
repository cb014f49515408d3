package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const moviePage = `<html><body>
<div itemprop="director"><span itemprop="name"> Michael Mann </span></div>
<p itemprop="description">A group of
   professional bank robbers.</p>
<div itemprop="actor"><span itemprop="name">Al Pacino</span></div>
<div itemprop="actor"><span itemprop="name">Robert De Niro</span></div>
<div itemprop="actor"><span itemprop="name">Al Pacino</span></div>
</body></html>`

func intPtr(i int) *int { return &i }

func TestScraper_PageURL(t *testing.T) {
	s := NewScraper(ScraperConfig{URLTemplate: "https://meta.example/{title}/{year}"}, nil, zap.NewNop())

	assert.Equal(t, "https://meta.example/The%20Thing/1982", s.PageURL("The Thing", intPtr(1982)))
	assert.Equal(t, "https://meta.example/Heat/", s.PageURL("Heat", nil))
}

func TestExtract(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(moviePage))
	require.NoError(t, err)

	d := Extract(doc.Selection, DefaultSelectors())

	assert.Equal(t, "Michael Mann", d.Director)
	assert.Equal(t, "A group of professional bank robbers.", d.Synopsis)
	assert.Equal(t, []string{"Al Pacino", "Robert De Niro"}, d.Actors)
	assert.False(t, d.IsEmpty())
}

func TestScraper_Lookup(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(moviePage))
	}))
	defer srv.Close()

	s := NewScraper(ScraperConfig{URLTemplate: srv.URL + "/movies/{title}", Selectors: DefaultSelectors()}, srv.Client(), zap.NewNop())
	d, err := s.Lookup(context.Background(), "Heat", nil)

	require.NoError(t, err)
	assert.Equal(t, "/movies/Heat", gotPath)
	assert.Equal(t, "Michael Mann", d.Director)
}

func TestScraper_LookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s := NewScraper(ScraperConfig{URLTemplate: srv.URL + "/{title}", Selectors: DefaultSelectors()}, srv.Client(), zap.NewNop())

	// Missing pages never trip the breaker.
	for i := 0; i < 10; i++ {
		_, err := s.Lookup(context.Background(), "Unknown", nil)
		assert.ErrorIs(t, err, ErrNoMetadata)
	}
}

func TestScraper_BreakerOpensOnServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewScraper(ScraperConfig{URLTemplate: srv.URL + "/{title}", Selectors: DefaultSelectors()}, srv.Client(), zap.NewNop())

	for i := 0; i < 5; i++ {
		_, err := s.Lookup(context.Background(), "Heat", nil)
		assert.ErrorContains(t, err, "502")
	}

	_, err := s.Lookup(context.Background(), "Heat", nil)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 5, calls)
}

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricescout/internal/cache"
	"pricescout/internal/fetch"
)

func testFetcher() *fetch.Fetcher {
	return fetch.New(fetch.Options{
		MaxConcurrent:  2,
		RetryCount:     1,
		InitialTimeout: time.Second,
		MaxTimeout:     time.Second,
		BackoffFactor:  2,
		WaitUnit:       time.Millisecond,
	})
}

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, html)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestResolvePrefersSpecificSelector(t *testing.T) {
	page := `<html><body>
	<a href="https://www.dogtas.com/generic-p-1">fora do bloco de resultado</a>
	<div class="g"><a href="https://www.dogtas.com/lara-koltuk-p-42">resultado</a></div>
	</body></html>`
	ts := serveHTML(t, page)

	r := New(testFetcher(), cache.New(""), "dogtas.com", ts.URL+"/search")
	got, err := r.Resolve(context.Background(), "3012345678")
	require.NoError(t, err)
	assert.Equal(t, "https://www.dogtas.com/lara-koltuk-p-42", got)
}

func TestResolveUnwrapsRedirect(t *testing.T) {
	page := `<html><body>
	<div class="g"><a href="/url?q=https://www.dogtas.com/lara-koltuk-p-42&sa=U&ved=x">resultado</a></div>
	</body></html>`
	ts := serveHTML(t, page)

	r := New(testFetcher(), cache.New(""), "dogtas.com", ts.URL+"/search")
	got, err := r.Resolve(context.Background(), "3012345678")
	require.NoError(t, err)
	assert.Equal(t, "https://www.dogtas.com/lara-koltuk-p-42", got)
}

func TestResolveRejectsListingsAndForeignDomains(t *testing.T) {
	page := `<html><body>
	<div class="g"><a href="https://www.youtube.com/watch?v=1&dogtas.com">vídeo</a></div>
	<div class="g"><a href="https://www.dogtas.com/yatak-odasi-kategori">listagem</a></div>
	<div class="g"><a href="https://www.dogtas.com/tumu-c-99">vitrine</a></div>
	<div class="g"><a href="https://www.dogtas.com/collection/lara">coleção</a></div>
	<div class="g"><a href="https://www.dogtas.com/lara-karyola-p-7">produto</a></div>
	</body></html>`
	ts := serveHTML(t, page)

	r := New(testFetcher(), cache.New(""), "dogtas.com", ts.URL+"/search")
	got, err := r.Resolve(context.Background(), "3012345678")
	require.NoError(t, err)
	assert.Equal(t, "https://www.dogtas.com/lara-karyola-p-7", got)
}

func TestResolveNoQualifyingLink(t *testing.T) {
	ts := serveHTML(t, `<html><body><div class="g"><a href="https://www.google.com/maps">mapa</a></div></body></html>`)

	r := New(testFetcher(), cache.New(""), "dogtas.com", ts.URL+"/search")
	_, err := r.Resolve(context.Background(), "3012345678")
	assert.ErrorIs(t, err, ErrNoProductLink)
}

func TestResolveFetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(ts.Close)

	r := New(testFetcher(), cache.New(""), "dogtas.com", ts.URL+"/search")
	_, err := r.Resolve(context.Background(), "3012345678")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoProductLink)
}

package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pricescout/internal/cache"
	"pricescout/internal/fetch"
)

// ErrNoProductLink indica que a página de busca carregou mas nenhum link
// qualificado para o domínio alvo foi encontrado.
var ErrNoProductLink = errors.New("nenhum link de produto nos resultados")

var redirectRe = regexp.MustCompile(`/url\?q=([^&]+)`)

// Caminhos que nunca são página de produto: home do agregador, listagens.
var skipMarkers = []string{"google.com", "youtube.com", "kategori", "collection", "/tumu-c-"}

type Resolver struct {
	fetcher   *fetch.Fetcher
	cache     *cache.Cache
	domain    string
	searchURL string
}

func New(fetcher *fetch.Fetcher, c *cache.Cache, domain, searchURL string) *Resolver {
	return &Resolver{fetcher: fetcher, cache: c, domain: domain, searchURL: searchURL}
}

// Resolve busca o código no buscador restrito ao domínio alvo e devolve a
// primeira URL de produto aceita, na ordem dos seletores (mais específico
// primeiro, âncora genérica por último).
func (r *Resolver) Resolve(ctx context.Context, code string) (string, error) {
	if u, ok := r.cache.GetURL(ctx, code); ok {
		return u, nil
	}

	query := fmt.Sprintf("%s?q=%s", r.searchURL, url.QueryEscape("site:"+r.domain+" "+code))
	doc, err := r.fetcher.Fetch(ctx, query)
	if err != nil {
		return "", err
	}

	selectors := []string{
		fmt.Sprintf(`div.g a[href*=%q]`, r.domain),
		fmt.Sprintf(`a[href*=%q]`, r.domain),
		fmt.Sprintf(`[data-ved] a[href*=%q]`, r.domain),
	}

	for _, sel := range selectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href := strings.TrimSpace(s.AttrOr("href", ""))
			if href == "" {
				return true
			}
			if m := redirectRe.FindStringSubmatch(href); m != nil {
				href = m[1]
			}
			if !r.accept(href) {
				return true
			}
			found = href
			return false
		})
		if found != "" {
			r.cache.SetURL(ctx, code, found)
			return found, nil
		}
	}

	return "", ErrNoProductLink
}

func (r *Resolver) accept(href string) bool {
	lower := strings.ToLower(href)
	for _, marker := range skipMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return strings.Contains(lower, r.domain)
}

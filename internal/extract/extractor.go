package extract

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"pricescout/internal/fetch"
	"pricescout/internal/model"
)

// ErrIncomplete marca uma página estruturalmente incompleta: achou coleção
// mas não achou nome de produto. Não dá para normalizar, não gera registro.
var ErrIncomplete = errors.New("página de produto incompleta")

var digitRunRe = regexp.MustCompile(`\d+`)

// Rótulos de raiz do breadcrumb que não contam como categoria.
var rootLabels = map[string]bool{"Ana Sayfa": true, "Home": true}

const currencyMarker = "TL"

type Extractor struct {
	fetcher *fetch.Fetcher
}

func New(fetcher *fetch.Fetcher) *Extractor {
	return &Extractor{fetcher: fetcher}
}

// Extract baixa a página do produto e monta o registro bruto, cada campo com
// sua própria cadeia de fallbacks.
func (e *Extractor) Extract(ctx context.Context, url string) (*model.RawProduct, error) {
	doc, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return Parse(doc, url)
}

// Parse é a extração pura sobre o documento, separada para os testes.
func Parse(doc *goquery.Document, url string) (*model.RawProduct, error) {
	raw := &model.RawProduct{SourceURL: url}

	raw.Collection, raw.ShortName = splitTitle(doc.Find("h1.title").First())
	if raw.Collection != "" && raw.ShortName == "" {
		return nil, ErrIncomplete
	}
	if raw.Collection != "" {
		raw.FullName = raw.Collection + " " + raw.ShortName
	} else {
		raw.FullName = raw.ShortName
	}

	raw.SKUText = digitRunRe.FindString(doc.Find(".sku").First().Text())
	raw.Category = firstCategory(doc)
	raw.Brand = brandFromJSONLD(doc)

	raw.OriginalPrice = strings.TrimSpace(doc.Find(".sale-price.sale-variant-price, .sale-price.blc").First().Text())
	raw.Price = strings.TrimSpace(doc.Find(".discount-price, .new-sale-price").First().Text())
	if raw.Price == "" {
		raw.Price = raw.OriginalPrice
	}
	if raw.Price == "" {
		raw.Price = genericPrice(doc)
	}

	return raw, nil
}

// splitTitle separa o h1: o span aninhado é o nome da coleção e o texto
// irmão que segue é o nome curto; sem span, o título inteiro é o nome curto.
func splitTitle(title *goquery.Selection) (collection, short string) {
	if title.Length() == 0 {
		return "", ""
	}
	span := title.Find("span").First()
	if span.Length() == 0 {
		return "", strings.TrimSpace(title.Text())
	}
	collection = strings.TrimSpace(span.Text())
	for n := span.Nodes[0].NextSibling; n != nil; n = n.NextSibling {
		if n.Type == html.TextNode {
			short = strings.TrimSpace(n.Data)
			if short != "" {
				break
			}
		}
	}
	return collection, short
}

func firstCategory(doc *goquery.Document) string {
	var category string
	doc.Find("ol.breadcrumb li").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if text == "" || rootLabels[text] {
			return true
		}
		category = text
		return false
	})
	return category
}

func brandFromJSONLD(doc *goquery.Document) string {
	var brand string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var entity struct {
			Type  string          `json:"@type"`
			Brand json.RawMessage `json:"brand"`
		}
		if err := json.Unmarshal([]byte(s.Text()), &entity); err != nil {
			return true
		}
		if entity.Type != "Product" {
			return true
		}
		// primeira entidade Product encerra a varredura, com ou sem marca
		if len(entity.Brand) == 0 {
			return false
		}
		var name string
		if err := json.Unmarshal(entity.Brand, &name); err == nil {
			brand = name
			return false
		}
		var nested struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(entity.Brand, &nested); err == nil {
			brand = nested.Name
		}
		return false
	})
	return brand
}

// genericPrice varre qualquer elemento com classe de preço e aceita o
// primeiro cujo texto tem o marcador de moeda e ao menos um dígito.
func genericPrice(doc *goquery.Document) string {
	var price string
	doc.Find(`[class*="price"], [class*="Price"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if strings.Contains(text, currencyMarker) && strings.ContainsAny(text, "0123456789") {
			price = text
			return false
		}
		return true
	})
	return price
}

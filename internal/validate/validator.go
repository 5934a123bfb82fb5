package validate

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"pricescout/internal/model"
)

const (
	minPrice = 10
	maxPrice = 1_000_000
)

var (
	nonPriceRe = regexp.MustCompile(`[^\d.,]`)
	nonSKURe   = regexp.MustCompile(`[^A-Za-z0-9\-_]`)
)

// CleanPrice normaliza um texto de preço para número. Com os dois
// separadores presentes, o que aparece por último é o decimal; só vírgula é
// decimal; só ponto é decimal apenas com exatamente dois dígitos depois,
// senão é separador de milhar. Fora de [10, 1_000_000] devolve false.
func CleanPrice(text string) (float64, bool) {
	clean := nonPriceRe.ReplaceAllString(text, "")
	if clean == "" {
		return 0, false
	}

	hasComma := strings.Contains(clean, ",")
	hasDot := strings.Contains(clean, ".")
	switch {
	case hasComma && hasDot:
		if strings.LastIndex(clean, ".") < strings.LastIndex(clean, ",") {
			// formato turco: 12.500,50 -> 12500.50
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.ReplaceAll(clean, ",", ".")
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case hasComma:
		clean = strings.ReplaceAll(clean, ",", ".")
	case hasDot:
		parts := strings.Split(clean, ".")
		if len(parts[len(parts)-1]) != 2 {
			clean = strings.ReplaceAll(clean, ".", "")
		}
	}

	price, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		log.Printf("[AVISO] preço não parseável: %q", text)
		return 0, false
	}
	if price < minPrice || price > maxPrice {
		log.Printf("[AVISO] preço fora da faixa: %v", price)
		return 0, false
	}
	return price, true
}

// CleanSKU tira tudo fora de [A-Za-z0-9_-] e exige ao menos 3 caracteres.
func CleanSKU(text string) (string, bool) {
	sku := nonSKURe.ReplaceAllString(strings.TrimSpace(text), "")
	if len(sku) < 3 {
		return "", false
	}
	return sku, true
}

// Validate transforma o registro bruto no esquema final: textos aparados,
// preços truncados para inteiro ou nulos, SKU limpo ou vazio. Os campos
// intermediários do bruto ficam de fora por construção.
func Validate(raw *model.RawProduct) model.Product {
	p := model.Product{
		Category:   strings.TrimSpace(raw.Category),
		Collection: strings.TrimSpace(raw.Collection),
		ShortName:  strings.TrimSpace(raw.ShortName),
		FullName:   strings.TrimSpace(raw.FullName),
		SourceURL:  raw.SourceURL,
	}

	if sku, ok := CleanSKU(raw.SKUText); ok {
		p.SKU = sku
	}
	if raw.OriginalPrice != "" {
		if v, ok := CleanPrice(raw.OriginalPrice); ok {
			n := int(v)
			p.ListPrice = &n
		}
	}
	if raw.Price != "" {
		if v, ok := CleanPrice(raw.Price); ok {
			n := int(v)
			p.RetailPrice = &n
		}
	}

	return p
}

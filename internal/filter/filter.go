package filter

import (
	"log"
	"strings"

	"pricescout/internal/model"
)

// Rules carrega as listas de palavras e categorias das regras de negócio.
// Injetadas na construção para permitir conjuntos por mercado.
type Rules struct {
	// Categoria excluída por igualdade exata.
	ExcludedCategory string
	// Palavras de acessório de decoração: excluem produto sem categoria.
	Keywords []string
	// Duplicação: registro em DuplicateFrom cujo nome contém uma das
	// palavras ganha um clone em DuplicateTo.
	DuplicateFrom     string
	DuplicateTo       string
	DuplicateKeywords []string
}

// DefaultRules é o conjunto do site da Doğtaş.
func DefaultRules() Rules {
	return Rules{
		ExcludedCategory: "Doğtaş Home",
		Keywords: []string{
			"Abajur", "Halı", "Biblo", "Kırlent", "Tablo", "Sarkıt",
			"Çerceve", "Vazo", "Mum", "Obje", "Küp", "Saat",
			"Lambader", "Tabak", "Şamdan",
		},
		DuplicateFrom:     "Yemek Odası",
		DuplicateTo:       "Yatak Odası",
		DuplicateKeywords: []string{"komodin", "ayna"},
	}
}

type Filter struct {
	rules Rules
}

func New(rules Rules) *Filter {
	return &Filter{rules: rules}
}

// ShouldExclude diz se o produto fica fora do resultado: categoria excluída
// exata, ou categoria vazia com nome contendo palavra de acessório.
func (f *Filter) ShouldExclude(p model.Product) bool {
	if p.Category == f.rules.ExcludedCategory {
		log.Printf("[FILTRO] categoria %s: %s", p.Category, p.FullName)
		return true
	}

	if p.Category == "" {
		combined := strings.ToLower(p.ShortName + " " + p.FullName)
		for _, kw := range f.rules.Keywords {
			if strings.Contains(combined, strings.ToLower(kw)) {
				log.Printf("[FILTRO] sem categoria + %s: %s", kw, p.FullName)
				return true
			}
		}
	}

	return false
}

// ApplyDuplication mantém todos os registros e, depois da passada completa,
// anexa os clones com a categoria reescrita. Só a categoria muda no clone.
func (f *Filter) ApplyDuplication(products []model.Product) []model.Product {
	result := make([]model.Product, 0, len(products))
	var clones []model.Product

	for _, p := range products {
		result = append(result, p)

		if p.Category != f.rules.DuplicateFrom {
			continue
		}
		combined := strings.ToLower(p.ShortName + " " + p.FullName)
		for _, kw := range f.rules.DuplicateKeywords {
			if strings.Contains(combined, strings.ToLower(kw)) {
				clone := p.Clone()
				clone.Category = f.rules.DuplicateTo
				clones = append(clones, clone)
				log.Printf("[DUPLICA] %s -> %s: %s", f.rules.DuplicateFrom, f.rules.DuplicateTo, p.FullName)
				break
			}
		}
	}

	return append(result, clones...)
}

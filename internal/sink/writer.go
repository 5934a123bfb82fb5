package sink

import (
	"fmt"
	"log"
	"sort"

	"github.com/xuri/excelize/v2"

	"pricescout/internal/model"
)

// Cabeçalhos na ordem que o comparador de etiquetas espera.
var header = []string{"kategori", "KOLEKSIYON", "sku", "urun_adi_tam", "urun_adi", "LISTE", "PERAKENDE", "urun_url"}

// Write ordena os produtos pelo nome completo (vazios por último) e grava a
// planilha de saída. Devolve o número de linhas de dados gravadas.
func Write(path string, products []model.Product) (int, error) {
	sorted := make([]model.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].FullName, sorted[j].FullName
		if (a == "") != (b == "") {
			return b == ""
		}
		return a < b
	})

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for col, h := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, p := range sorted {
		row := i + 2
		values := []any{p.Category, p.Collection, p.SKU, p.FullName, p.ShortName, nil, nil, p.SourceURL}
		if p.ListPrice != nil {
			values[5] = *p.ListPrice
		}
		if p.RetailPrice != nil {
			values[6] = *p.RetailPrice
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("gravar %s: %w", path, err)
	}
	log.Printf("[SALVO] %s (%d linhas)", path, len(sorted))
	return len(sorted), nil
}

// PrintStatistics imprime o resumo da execução: distribuição por categoria e
// mínimo/média/máximo de cada coluna de preço.
func PrintStatistics(products []model.Product) {
	log.Printf("Total de produtos: %d", len(products))

	byCategory := map[string]int{}
	for _, p := range products {
		if p.Category != "" {
			byCategory[p.Category]++
		}
	}
	type kv struct {
		cat string
		n   int
	}
	var cats []kv
	for c, n := range byCategory {
		cats = append(cats, kv{c, n})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].n != cats[j].n {
			return cats[i].n > cats[j].n
		}
		return cats[i].cat < cats[j].cat
	})
	for _, c := range cats {
		log.Printf("  - %s: %d produtos", c.cat, c.n)
	}

	printPriceStats("LISTE", collect(products, func(p model.Product) *int { return p.ListPrice }))
	printPriceStats("PERAKENDE", collect(products, func(p model.Product) *int { return p.RetailPrice }))
}

func collect(products []model.Product, get func(model.Product) *int) []int {
	var out []int
	for _, p := range products {
		if v := get(p); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func printPriceStats(label string, prices []int) {
	if len(prices) == 0 {
		return
	}
	min, max, sum := prices[0], prices[0], 0
	for _, v := range prices {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	log.Printf("%s: média %.0f TL, mínimo %d TL, máximo %d TL", label, float64(sum)/float64(len(prices)), min, max)
}

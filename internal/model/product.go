package model

// RawProduct guarda os campos como saíram da página, antes da limpeza.
type RawProduct struct {
	Collection    string
	ShortName     string
	FullName      string
	SKUText       string
	OriginalPrice string
	Price         string
	Category      string
	Brand         string
	SourceURL     string
}

// Product é o esquema final gravado na planilha.
type Product struct {
	Category    string
	Collection  string
	SKU         string
	FullName    string
	ShortName   string
	ListPrice   *int
	RetailPrice *int
	SourceURL   string
}

func (p Product) Clone() Product {
	c := p
	if p.ListPrice != nil {
		v := *p.ListPrice
		c.ListPrice = &v
	}
	if p.RetailPrice != nil {
		v := *p.RetailPrice
		c.RetailPrice = &v
	}
	return c
}

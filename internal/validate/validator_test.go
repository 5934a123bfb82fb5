package validate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricescout/internal/model"
)

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12.500,50", 12500.50, true},
		{"12.500,00 TL", 12500.00, true},
		{"1.234", 1234, true},
		{"45,90", 45.90, true},
		{"999.99", 999.99, true},
		{"1.234.567", 0, false}, // acima da faixa
		{"5", 0, false},         // abaixo da faixa
		{"", 0, false},
		{"fiyat yok", 0, false},
		{"1,2,3", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := CleanPrice(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestCleanPriceIdempotent(t *testing.T) {
	for _, in := range []string{"12.500,50", "45,90", "150"} {
		first, ok := CleanPrice(in)
		require.True(t, ok, in)
		second, ok := CleanPrice(fmt.Sprintf("%.2f", first))
		require.True(t, ok, in)
		assert.InDelta(t, first, second, 0.001)
	}
}

func TestCleanSKU(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"AB-12_3!", "AB-12_3", true},
		{"  3012345678  ", "3012345678", true},
		{"ab", "", false},
		{"!!", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := CleanSKU(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestValidate(t *testing.T) {
	raw := &model.RawProduct{
		Collection:    " Lara ",
		ShortName:     "3'lü Koltuk",
		FullName:      " Lara 3'lü Koltuk ",
		SKUText:       "3012345678",
		OriginalPrice: "12.500,00 TL",
		Price:         "9.999,90 TL",
		Category:      " Oturma Odası ",
		SourceURL:     "https://www.dogtas.com/lara",
	}

	p := Validate(raw)

	assert.Equal(t, "Lara", p.Collection)
	assert.Equal(t, "Lara 3'lü Koltuk", p.FullName)
	assert.Equal(t, "Oturma Odası", p.Category)
	assert.Equal(t, "3012345678", p.SKU)
	require.NotNil(t, p.ListPrice)
	assert.Equal(t, 12500, *p.ListPrice)
	require.NotNil(t, p.RetailPrice)
	assert.Equal(t, 9999, *p.RetailPrice)
}

func TestValidateBadFields(t *testing.T) {
	raw := &model.RawProduct{
		ShortName:     "Koltuk",
		FullName:      "Koltuk",
		SKUText:       "12",       // curto demais
		OriginalPrice: "3 TL",     // abaixo da faixa
		Price:         "sorunuz",  // sem número
		SourceURL:     "https://www.dogtas.com/koltuk",
	}

	p := Validate(raw)

	assert.Empty(t, p.SKU)
	assert.Nil(t, p.ListPrice)
	assert.Nil(t, p.RetailPrice)
	assert.Equal(t, "Koltuk", p.FullName)
}

package codes

import (
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"
)

// IsValidCode diz se a célula é um código de inventário: 10 dígitos começando com 3.
func IsValidCode(s string) bool {
	if len(s) != 10 || s[0] != '3' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Read lê a primeira coluna da primeira planilha e devolve os códigos válidos,
// na ordem em que aparecem. Células inválidas são ignoradas em silêncio.
func Read(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("ler %s: %w", path, err)
	}

	var list []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if IsValidCode(cell) {
			list = append(list, cell)
		}
	}

	log.Printf("[OK] %s: %d códigos lidos", path, len(list))
	return list, nil
}

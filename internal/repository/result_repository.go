package repository

import (
	"database/sql"

	"github.com/google/uuid"

	"pricescout/internal/model"
)

// ResultRepository guarda o resultado de cada execução no postgres, com um
// run_id comum para comparar execuções.
type ResultRepository struct {
	DB *sql.DB
}

func (r *ResultRepository) SaveRun(runID string, products []model.Product) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}

	for _, p := range products {
		_, err := tx.Exec(`
			INSERT INTO scrape_results
			(id, run_id, sku, kategori, koleksiyon, urun_adi_tam, urun_adi, liste, perakende, urun_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, uuid.New().String(), runID, p.SKU, p.Category, p.Collection, p.FullName, p.ShortName,
			nullable(p.ListPrice), nullable(p.RetailPrice), p.SourceURL)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (r *ResultRepository) ListRun(runID string) ([]model.Product, error) {
	rows, err := r.DB.Query(`
		SELECT sku, kategori, koleksiyon, urun_adi_tam, urun_adi, liste, perakende, urun_url
		FROM scrape_results
		WHERE run_id = $1
		ORDER BY urun_adi_tam
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Product
	for rows.Next() {
		var p model.Product
		var liste, perakende sql.NullInt64
		if err := rows.Scan(&p.SKU, &p.Category, &p.Collection, &p.FullName, &p.ShortName, &liste, &perakende, &p.SourceURL); err != nil {
			return nil, err
		}
		if liste.Valid {
			v := int(liste.Int64)
			p.ListPrice = &v
		}
		if perakende.Valid {
			v := int(perakende.Int64)
			p.RetailPrice = &v
		}
		list = append(list, p)
	}

	return list, rows.Err()
}

func nullable(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

package db

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS scrape_results (
	id           uuid PRIMARY KEY,
	run_id       uuid NOT NULL,
	sku          text,
	kategori     text,
	koleksiyon   text,
	urun_adi_tam text NOT NULL,
	urun_adi     text,
	liste        integer,
	perakende    integer,
	urun_url     text,
	created_at   timestamptz NOT NULL DEFAULT now()
)`

func New(url string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func NewPgx(url string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(context.Background(), url)
	return conn, err
}

package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"

	"pricescout/internal/cache"
	"pricescout/internal/codes"
	"pricescout/internal/config"
	"pricescout/internal/db"
	"pricescout/internal/extract"
	"pricescout/internal/fetch"
	"pricescout/internal/filter"
	"pricescout/internal/observability"
	"pricescout/internal/repository"
	"pricescout/internal/scraper"
	"pricescout/internal/search"
	"pricescout/internal/sink"
)

// go run cmd/scraper/main.go -input=Other.xlsx -output=dogtasCom.xlsx
func main() {
	cfg := config.Load()

	input := flag.String("input", cfg.InputPath, "Planilha com os códigos na primeira coluna")
	output := flag.String("output", cfg.OutputPath, "Planilha de saída")
	flag.Parse()

	observability.Start(cfg.MetricsPort)

	codeList, err := codes.Read(*input)
	if err != nil {
		log.Fatalf("[ERRO] leitura de %s: %v", *input, err)
	}
	if len(codeList) == 0 {
		log.Fatalf("[ERRO] nenhum código válido em %s", *input)
	}

	fetcher := fetch.New(fetch.Options{
		MaxConcurrent:  cfg.MaxConcurrent,
		RetryCount:     cfg.RetryCount,
		InitialTimeout: cfg.InitialTimeout,
		MaxTimeout:     cfg.MaxTimeout,
		BackoffFactor:  cfg.BackoffFactor,
	})
	resolver := search.New(fetcher, cache.New(cfg.RedisURL), cfg.TargetDomain, cfg.SearchURL)
	svc := scraper.New(resolver, extract.New(fetcher), filter.New(filter.DefaultRules()), cfg.RateDelay)

	start := time.Now()
	products := svc.Run(context.Background(), codeList)
	elapsed := time.Since(start)

	log.Printf("[INFO] varredura terminada em %.2fs", elapsed.Seconds())
	if len(products) == 0 {
		log.Fatal("[ERRO] nenhum produto coletado")
	}
	log.Printf("[INFO] %.2f produtos/s", float64(len(products))/elapsed.Seconds())

	if _, err := sink.Write(*output, products); err != nil {
		log.Fatalf("[ERRO] %v", err)
	}
	sink.PrintStatistics(products)

	if cfg.DatabaseURL != "" {
		conn, err := db.New(cfg.DatabaseURL)
		if err != nil {
			log.Printf("[AVISO] postgres indisponível: %v", err)
			return
		}
		defer conn.Close()

		repo := &repository.ResultRepository{DB: conn}
		runID := uuid.New().String()
		if err := repo.SaveRun(runID, products); err != nil {
			log.Printf("[AVISO] persistência da execução falhou: %v", err)
			return
		}
		log.Printf("[OK] execução %s gravada no postgres", runID)
	}
}

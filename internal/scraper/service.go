package scraper

import (
	"context"
	"errors"
	"log"
	"time"

	"pricescout/internal/extract"
	"pricescout/internal/filter"
	"pricescout/internal/model"
	"pricescout/internal/observability"
	"pricescout/internal/search"
	"pricescout/internal/validate"
)

type Service struct {
	resolver  *search.Resolver
	extractor *extract.Extractor
	filter    *filter.Filter
	rateDelay time.Duration
}

func New(resolver *search.Resolver, extractor *extract.Extractor, f *filter.Filter, rateDelay time.Duration) *Service {
	return &Service{resolver: resolver, extractor: extractor, filter: f, rateDelay: rateDelay}
}

// Run processa os códigos em sequência: resolve, extrai, valida, aplica o
// filtro de exclusão; ao final da passada aplica a duplicação. Falha de um
// código nunca derruba a execução, só pula para o próximo. Entre códigos há
// uma espera fixa para limitar a taxa contra os dois sites.
func (s *Service) Run(ctx context.Context, codeList []string) []model.Product {
	log.Printf("[INFO] %d códigos para varrer", len(codeList))

	var products []model.Product
	for i, code := range codeList {
		if ctx.Err() != nil {
			log.Printf("[INFO] execução interrompida em %d/%d", i, len(codeList))
			break
		}

		if p, ok := s.processCode(ctx, code, i+1, len(codeList)); ok {
			products = append(products, p)
			observability.ProductsScrapedTotal.Inc()
		}

		sleep(ctx, s.rateDelay)
	}

	return s.filter.ApplyDuplication(products)
}

func (s *Service) processCode(ctx context.Context, code string, idx, total int) (model.Product, bool) {
	url, err := s.resolver.Resolve(ctx, code)
	if err != nil {
		if errors.Is(err, search.ErrNoProductLink) {
			log.Printf("[%d/%d] %s: sem link de produto", idx, total, code)
			observability.CodesSkippedTotal.WithLabelValues("resolve").Inc()
		} else {
			log.Printf("[%d/%d] %s: busca falhou: %v", idx, total, code, err)
			observability.CodesSkippedTotal.WithLabelValues("fetch").Inc()
		}
		return model.Product{}, false
	}

	raw, err := s.extractor.Extract(ctx, url)
	if err != nil {
		reason := "fetch"
		if errors.Is(err, extract.ErrIncomplete) {
			reason = "extract"
		}
		log.Printf("[%d/%d] %s: extração falhou: %v", idx, total, code, err)
		observability.CodesSkippedTotal.WithLabelValues(reason).Inc()
		return model.Product{}, false
	}

	p := validate.Validate(raw)
	if p.FullName == "" {
		log.Printf("[%d/%d] %s: produto sem nome, descartado", idx, total, code)
		observability.CodesSkippedTotal.WithLabelValues("extract").Inc()
		return model.Product{}, false
	}

	if s.filter.ShouldExclude(p) {
		observability.CodesSkippedTotal.WithLabelValues("filtered").Inc()
		return model.Product{}, false
	}

	log.Printf("[%d/%d] %s: OK: %s", idx, total, code, p.FullName)
	return p, true
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

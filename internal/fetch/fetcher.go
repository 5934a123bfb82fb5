package fetch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/semaphore"

	"pricescout/internal/observability"
)

type Kind int

const (
	KindTimeout Kind = iota
	KindOther
)

func (k Kind) String() string {
	if k == KindTimeout {
		return "timeout"
	}
	return "other"
}

// FetchError é o resultado terminal de um download que esgotou as tentativas.
type FetchError struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s após todas as tentativas: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type Options struct {
	MaxConcurrent  int
	RetryCount     int
	InitialTimeout time.Duration
	MaxTimeout     time.Duration
	BackoffFactor  float64

	// WaitUnit escala as esperas entre tentativas (2^n e n*1.5 unidades).
	// O padrão é um segundo; os testes usam milissegundos.
	WaitUnit time.Duration
}

type Fetcher struct {
	client *http.Client
	sem    *semaphore.Weighted
	opts   Options
}

func New(opts Options) *Fetcher {
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}
	if opts.RetryCount < 1 {
		opts.RetryCount = 1
	}
	if opts.WaitUnit == 0 {
		opts.WaitUnit = time.Second
	}
	return &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
			},
		},
		sem:  semaphore.NewWeighted(int64(opts.MaxConcurrent)),
		opts: opts,
	}
}

// Fetch baixa a URL e devolve o documento parseado. O timeout por tentativa
// cresce com o fator de backoff até o teto; timeout e erro de transporte
// esperam 2^n e n*1.5 unidades respectivamente antes de repetir. O laço é
// limitado por RetryCount, nunca recursivo.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	for attempt := 1; ; attempt++ {
		timeout := time.Duration(float64(f.opts.InitialTimeout) * math.Pow(f.opts.BackoffFactor, float64(attempt-1)))
		if timeout > f.opts.MaxTimeout {
			timeout = f.opts.MaxTimeout
		}

		doc, err := f.do(ctx, url, timeout)
		if err == nil {
			observability.PagesFetchedTotal.Inc()
			return doc, nil
		}

		if isTimeout(err) {
			if attempt < f.opts.RetryCount {
				observability.FetchRetriesTotal.Inc()
				wait := time.Duration(1<<uint(attempt)) * f.opts.WaitUnit
				log.Printf("[TIMEOUT] tentativa %d/%d, esperando %v: %s", attempt, f.opts.RetryCount, wait, url)
				sleep(ctx, wait)
				continue
			}
			observability.FetchFailuresTotal.WithLabelValues(KindTimeout.String()).Inc()
			return nil, &FetchError{Kind: KindTimeout, URL: url, Err: err}
		}

		if attempt < f.opts.RetryCount {
			observability.FetchRetriesTotal.Inc()
			wait := time.Duration(float64(attempt) * 1.5 * float64(f.opts.WaitUnit))
			log.Printf("[ERRO] %v - repetindo (%d/%d)", err, attempt, f.opts.RetryCount)
			sleep(ctx, wait)
			continue
		}
		observability.FetchFailuresTotal.WithLabelValues(KindOther.String()).Inc()
		return nil, &FetchError{Kind: KindOther, URL: url, Err: err}
	}
}

func (f *Fetcher) do(ctx context.Context, url string, timeout time.Duration) (*goquery.Document, error) {
	if err := f.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer f.sem.Release(1)

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d em %s", resp.StatusCode, url)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

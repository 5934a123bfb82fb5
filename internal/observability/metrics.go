package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PagesFetchedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pages_fetched_total",
			Help: "Total de páginas baixadas com sucesso",
		},
	)
	FetchRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fetch_retries_total",
			Help: "Total de tentativas repetidas de download",
		},
	)
	FetchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_failures_total",
			Help: "Downloads que esgotaram as tentativas, por tipo",
		},
		[]string{"kind"},
	)
	CodesSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codes_skipped_total",
			Help: "Códigos descartados durante o pipeline, por motivo",
		},
		[]string{"reason"},
	)
	ProductsScrapedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "products_scraped_total",
			Help: "Produtos válidos coletados",
		},
	)
)

func Start(port string) {
	prometheus.MustRegister(
		PagesFetchedTotal,
		FetchRetriesTotal,
		FetchFailuresTotal,
		CodesSkippedTotal,
		ProductsScrapedTotal,
	)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FilesLoadedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cellmap_files_loaded_total",
		Help: "Total number of loaded files by type and outcome",
	}, []string{"type", "outcome"})
	RowsParsedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cellmap_rows_parsed_total",
		Help: "Total accepted data rows by file type",
	}, []string{"type"})
	ResultsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cellmap_results_total",
		Help: "Total measurement results created by file type",
	}, []string{"type"})
)

func init() {
	prometheus.MustRegister(FilesLoadedTotal)
	prometheus.MustRegister(RowsParsedTotal)
	prometheus.MustRegister(ResultsTotal)
}

// Handler returns the Prometheus scrape handler mounted at /metrics
func Handler() http.Handler { return promhttp.Handler() }

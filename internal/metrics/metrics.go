package metrics

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trendscout_command_runs_total",
		Help: "Total command runs",
	}, []string{"command"})
	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trendscout_command_errors_total",
		Help: "Total command errors",
	}, []string{"command"})
	SimilarRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trendscout_similar_runs_total",
		Help: "Total similar-account pipeline runs",
	})
	CandidatesScored = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trendscout_candidates_scored_total",
		Help: "Total candidate accounts scored",
	})
	Degradations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trendscout_degradations_total",
		Help: "Supplementary fetches that failed and were absorbed",
	}, []string{"source"})
	SearchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "trendscout_search_duration_seconds",
		Help:    "Keyword search workflow duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	APIRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trendscout_api_retries_total",
		Help: "Total upstream API retry attempts",
	}, []string{"endpoint"})
)

func init() {
	prometheus.MustRegister(CommandRuns, CommandErrors, SimilarRuns, CandidatesScored, Degradations, SearchDuration, APIRetries)
}

// Handler exposes the default registry.
func Handler() http.Handler { return promhttp.Handler() }

// StartServer starts a metrics HTTP server on addr (e.g., ":9090").
func StartServer(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, mux) }()
}

// ObserveSearchDuration records a search workflow duration.
func ObserveSearchDuration(start time.Time) {
	SearchDuration.Observe(time.Since(start).Seconds())
}

func IncCommandRun(cmd string)     { CommandRuns.WithLabelValues(cmd).Inc() }
func IncCommandError(cmd string)   { CommandErrors.WithLabelValues(cmd).Inc() }
func IncDegradation(source string) { Degradations.WithLabelValues(source).Inc() }
func IncAPIRetry(endpoint string)  { APIRetries.WithLabelValues(endpoint).Inc() }
func AddCandidatesScored(n int)    { CandidatesScored.Add(float64(n)) }

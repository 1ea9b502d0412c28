package promclient

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var BookDeltasEmitted = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cryptofeed_book_deltas_total",
		Help: "book deltas dispatched to consumers",
	},
	[]string{"feed", "pair"},
)

var BookSnapshotsEmitted = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cryptofeed_book_snapshots_total",
		Help: "full book snapshots dispatched to consumers",
	},
	[]string{"feed", "pair"},
)

var BookDeltasSuppressed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cryptofeed_book_deltas_suppressed_total",
		Help: "book mutations that left the depth-limited view unchanged",
	},
	[]string{"feed", "pair"},
)

var MessageErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cryptofeed_message_errors_total",
		Help: "inbound messages dropped because decoding or a consumer callback failed",
	},
	[]string{"feed"},
)

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()

	reg.MustRegister(BookDeltasEmitted)
	reg.MustRegister(BookSnapshotsEmitted)
	reg.MustRegister(BookDeltasSuppressed)
	reg.MustRegister(MessageErrors)
	reg.MustRegister(collectors.NewGoCollector())

	return reg
}

func StartPromClientServer(addr string) error {
	promHandler := promhttp.HandlerFor(NewRegistry(), promhttp.HandlerOpts{})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promHandler)
	log.Printf("prometheus server listening at %s", addr)

	return http.ListenAndServe(addr, mux)
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_entries_total",
			Help: "Total vehicle entry attempts",
		},
		[]string{"result"}, // success|failure
	)

	ExitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_exits_total",
			Help: "Total vehicle exit attempts",
		},
		[]string{"result"}, // success|failure
	)

	AvailableSpots = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "parking_available_spots",
			Help: "Currently available spots by type, as of the last availability query",
		},
		[]string{"spot_type"},
	)
)

func init() {
	prometheus.MustRegister(EntriesTotal)
	prometheus.MustRegister(ExitsTotal)
	prometheus.MustRegister(AvailableSpots)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

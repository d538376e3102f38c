package posts

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK             = "ok"
	outcomeHTTPError      = "http_error"
	outcomeTransportError = "transport_error"
	outcomeDecodeError    = "decode_error"
	outcomeInvalid        = "invalid"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "posts_client",
		Name:      "requests_total",
		Help:      "Calls made by the posts client, by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

func observe(op, outcome string) {
	requestsTotal.WithLabelValues(op, outcome).Inc()
}

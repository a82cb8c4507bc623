package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ConnectedClients counts open websocket connections.
	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chatteroo_connected_clients",
		Help: "Open websocket connections.",
	})

	// MessagesTotal counts chat messages received from clients.
	MessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatteroo_chat_messages_total",
		Help: "Chat messages received from clients.",
	})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the portal's collectors; nothing is registered globally.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medisecure",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "medisecure",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	requestsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "medisecure",
			Subsystem: "blood_requests",
			Name:      "created_total",
			Help:      "Blood requests created by receivers.",
		},
	)

	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medisecure",
			Subsystem: "blood_requests",
			Name:      "transitions_total",
			Help:      "Blood request status changes, by resulting status.",
		},
		[]string{"status"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medisecure",
			Subsystem: "notify",
			Name:      "notifications_total",
			Help:      "Notification attempts by channel and outcome.",
		},
		[]string{"channel", "outcome"},
	)

	realtimePeers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "medisecure",
			Subsystem: "realtime",
			Name:      "connected_peers",
			Help:      "Currently connected websocket peers.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		requestsCreated,
		transitions,
		notifications,
		realtimePeers,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records count and latency per route template, so /request_blood/3
// and /request_blood/4 share one series.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/metrics" {
				return next(c)
			}
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := strings.ToUpper(c.Request().Method)
			httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func RecordRequestCreated() { requestsCreated.Inc() }

func RecordTransition(status string) { transitions.WithLabelValues(status).Inc() }

// RecordNotification channel is "realtime" or "email"; outcome "sent", "dropped" or "failed".
func RecordNotification(channel, outcome string) {
	notifications.WithLabelValues(channel, outcome).Inc()
}

func PeerConnected()    { realtimePeers.Inc() }
func PeerDisconnected() { realtimePeers.Dec() }

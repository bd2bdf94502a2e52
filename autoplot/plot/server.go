package plot

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ezquant/autoplot/autoplot/tools/log"
)

const rangeEndpoint = "/range"

// ChartServer displays a figure in the browser and relays range changes of
// the page back to the figure linkage.
type ChartServer struct {
	figure  *Figure
	port    int
	router  *mux.Router
	metrics *serverMetrics
}

// serverMetrics are exposed on /metrics, one registry per server.
type serverMetrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	relay    prometheus.Histogram
	empty    prometheus.Counter
}

func newServerMetrics() *serverMetrics {
	m := &serverMetrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoplot_requests_total",
			Help: "Chart server requests by route",
		}, []string{"route"}),
		relay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "autoplot_relay_duration_seconds",
			Help:    "Time spent relaying a range change and autoscaling",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		empty: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autoplot_relay_empty_window_total",
			Help: "Range changes whose window held no bar",
		}),
	}
	m.registry.MustRegister(m.requests, m.relay, m.empty)
	return m
}

type ServerOption func(*ChartServer)

// WithPort sets the HTTP port of the chart server (default 8080)
func WithPort(port int) ServerOption {
	return func(server *ChartServer) {
		server.port = port
	}
}

func NewChartServer(figure *Figure, options ...ServerOption) *ChartServer {
	server := &ChartServer{
		figure:  figure,
		port:    8080,
		router:  mux.NewRouter(),
		metrics: newServerMetrics(),
	}

	for _, option := range options {
		option(server)
	}

	server.router.HandleFunc("/", server.handleIndex).Methods(http.MethodGet)
	server.router.HandleFunc("/figure", server.handleFigure).Methods(http.MethodGet)
	server.router.HandleFunc(rangeEndpoint, server.handleRange).Methods(http.MethodPost)
	server.router.Handle("/metrics", promhttp.HandlerFor(server.metrics.registry, promhttp.HandlerOpts{})).
		Methods(http.MethodGet)
	server.router.Use(server.count)

	return server
}

func (s *ChartServer) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}
		s.metrics.requests.WithLabelValues(route).Inc()
		next.ServeHTTP(w, r)
	})
}

func (s *ChartServer) Handler() http.Handler {
	return s.router
}

func (s *ChartServer) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := Render(w, s.figure, rangeEndpoint); err != nil {
		log.Error(err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *ChartServer) handleFigure(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.figure); err != nil {
		log.Error(err)
	}
}

type rangeRequest struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type rangeResponse struct {
	Start float64     `json:"start"`
	End   float64     `json:"end"`
	Y     *[2]float64 `json:"y"`
}

func (s *ChartServer) handleRange(w http.ResponseWriter, r *http.Request) {
	var request rangeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("invalid range: %v", err), http.StatusBadRequest)
		return
	}

	started := time.Now()
	response := rangeResponse{Start: request.Start, End: request.End}
	if low, high, ok := s.figure.Relay(request.Start, request.End); ok {
		response.Y = &[2]float64{low, high}
	}
	s.metrics.relay.Observe(time.Since(started).Seconds())
	if scaler := s.figure.linkage.Autoscaler(); scaler != nil {
		if _, _, ok := scaler.Bounds(request.Start, request.End); !ok {
			s.metrics.empty.Inc()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error(err)
	}
}

// Start serves the chart until the server fails.
func (s *ChartServer) Start() error {
	log.Infof("Chart available at http://localhost:%d", s.port)
	return http.ListenAndServe(fmt.Sprintf(":%d", s.port), s.router)
}

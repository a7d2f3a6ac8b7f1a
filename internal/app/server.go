package app

import (
	_ "embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/klabast/wb-services/shopping-sunday/internal/calendar"
)

//go:embed templates/index.html
var indexHTML string

// Options configures a Server
type Options struct {
	Table    *calendar.Table
	Logger   *zap.SugaredLogger
	CacheTTL time.Duration
	// Now returns the current time; its location decides what "today" is.
	// Defaults to time.Now, i.e. the host's local date.
	Now func() time.Time
}

// Server serves the shopping Sunday status over HTTP
type Server struct {
	table   *calendar.Table
	log     *zap.SugaredLogger
	now     func() time.Time
	cache   *ResponseCache
	metrics *Metrics
	index   *template.Template
	mux     *http.ServeMux
}

// NewServer creates a server and registers its routes
func NewServer(opts Options) (*Server, error) {
	if opts.Table == nil {
		opts.Table = calendar.Default()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	index, err := template.New("index").Parse(indexHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}

	metrics := NewMetrics()
	s := &Server{
		table:   opts.Table,
		log:     opts.Logger,
		now:     opts.Now,
		cache:   NewResponseCache(opts.CacheTTL, metrics),
		metrics: metrics,
		index:   index,
		mux:     http.NewServeMux(),
	}
	s.cache.now = opts.Now
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.route("/{$}", s.ServeIndex)
	s.route("/api", s.HandleStatus)
	s.route("/api/shopping_sundays", s.HandleShoppingSundays)
	s.route("/api/shopping_sundays.ics", s.HandleSubscribe)
	s.route("/api/download", s.HandleDownload)
	s.route("/healthz", s.HandleHealth)
	s.mux.Handle("/metrics", s.metrics.Handler())
}

// route registers handler behind the request logging and metrics middleware
func (s *Server) route(pattern string, handler http.HandlerFunc) {
	s.mux.Handle(pattern, s.instrument(pattern, handler))
}

// instrument tags each request with an ID, logs it and records metrics
func (s *Server) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w}
		next(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		elapsed := time.Since(start)
		s.metrics.requests.WithLabelValues(route, fmt.Sprint(rec.status)).Inc()
		s.metrics.duration.WithLabelValues(route).Observe(elapsed.Seconds())
		s.log.Debugw("Request served",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", elapsed,
		)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Cache returns the response cache
func (s *Server) Cache() *ResponseCache {
	return s.cache
}

// Metrics returns the server's collectors
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Table returns the calendar the server answers from
func (s *Server) Table() *calendar.Table {
	return s.table
}

// today returns the current calendar date in the clock's location
func (s *Server) today() calendar.Date {
	return calendar.FromTime(s.now())
}

package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "opay"

type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	// Storage
	StoreOpDuration *prometheus.HistogramVec
	StoreErrors     *prometheus.CounterVec

	// Views
	ViewsOpen        *prometheus.GaugeVec
	SignupsTotal     *prometheus.CounterVec
	ValidationErrors *prometheus.CounterVec
	LoginsTotal      *prometheus.CounterVec
	CarouselTicks    prometheus.Counter
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),
		StoreOpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "op_duration_seconds",
				Help:      "Device storage operation latency.",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.25, 0.5, 1, 2},
			},
			[]string{"op", "status"},
		),
		StoreErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "errors_total",
				Help:      "Device storage errors by op and class.",
			},
			[]string{"op", "class"},
		),
		ViewsOpen: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "views",
				Name:      "open",
				Help:      "Views currently open, by page.",
			},
			[]string{"page"},
		),
		SignupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "signup",
				Name:      "submissions_total",
				Help:      "Signup form submissions by result.",
			},
			[]string{"result"}, // result=created|invalid
		),
		ValidationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "signup",
				Name:      "validation_errors_total",
				Help:      "Failing signup checks by error flag.",
			},
			[]string{"flag"},
		),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "login",
				Name:      "submissions_total",
				Help:      "Login form submissions by outcome.",
			},
			[]string{"outcome"}, // outcome=ok|no_account|error
		),
		CarouselTicks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dashboard",
				Name:      "carousel_ticks_total",
				Help:      "Ad carousel rotations across all views.",
			},
		),
	}
	reg.MustRegister(
		p.RequestsTotal, p.RequestsDuration, p.InFlight,
		p.StoreOpDuration, p.StoreErrors,
		p.ViewsOpen, p.SignupsTotal, p.ValidationErrors, p.LoginsTotal, p.CarouselTicks,
	)

	return p
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		// route template is only available after routing; best effort:
		route := ctx.FullPath()

		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		p.InFlight.WithLabelValues(method, route).Inc()
		defer p.InFlight.WithLabelValues(method, route).Dec()
		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		secs := time.Since(start).Seconds()

		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(secs)
	}
}

func (p *Prom) SignupSubmitted(ok bool) {
	result := "invalid"
	if ok {
		result = "created"
	}
	p.SignupsTotal.WithLabelValues(result).Inc()
}

func (p *Prom) ValidationFailed(flag string) {
	p.ValidationErrors.WithLabelValues(flag).Inc()
}

func (p *Prom) LoginSubmitted(outcome string) {
	p.LoginsTotal.WithLabelValues(outcome).Inc()
}

func (p *Prom) CarouselTick() {
	p.CarouselTicks.Inc()
}

func (p *Prom) ViewOpened(page string) {
	p.ViewsOpen.WithLabelValues(page).Inc()
}

func (p *Prom) ViewClosed(page string) {
	p.ViewsOpen.WithLabelValues(page).Dec()
}

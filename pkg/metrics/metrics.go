// Package metrics expone contadores e histogramas Prometheus del motor de
// documentos.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/docengine/internal/application/rendering"
)

// Config etiquetas constantes de todas las series.
type Config struct {
	ServiceName string
	Environment string
}

// Recorder implementa rendering.Recorder y templates.RefreshObserver.
type Recorder struct {
	renders         *prometheus.CounterVec
	renderDuration  *prometheus.HistogramVec
	refreshes       *prometheus.CounterVec
	customTemplates prometheus.Gauge
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewRecorder registra las series en registerer; nil usa el registro por defecto.
func NewRecorder(registerer prometheus.Registerer, cfg Config) *Recorder {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	service := strings.TrimSpace(cfg.ServiceName)
	if service == "" {
		service = "docengine"
	}
	env := strings.TrimSpace(cfg.Environment)
	if env == "" {
		env = "unknown"
	}
	constLabels := prometheus.Labels{"service": service, "env": env}

	r := &Recorder{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "docengine_renders_total",
			Help:        "Documentos renderizados por layout, modo y resultado.",
			ConstLabels: constLabels,
		}, []string{"layout", "mode", "outcome"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "docengine_render_duration_seconds",
			Help:        "Duración de composición, codificación y entrega.",
			Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			ConstLabels: constLabels,
		}, []string{"layout", "mode"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "docengine_template_refreshes_total",
			Help:        "Recargas de plantillas personalizadas por resultado.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		customTemplates: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "docengine_custom_templates",
			Help:        "Plantillas personalizadas en caché tras la última recarga exitosa.",
			ConstLabels: constLabels,
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "docengine_http_requests_total",
			Help:        "Peticiones HTTP por ruta, método y estado.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "docengine_http_request_duration_seconds",
			Help:        "Latencia de las peticiones HTTP.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
	}

	registerer.MustRegister(
		r.renders, r.renderDuration, r.refreshes, r.customTemplates,
		r.httpRequests, r.httpDuration,
	)
	return r
}

// ObserveRender implementa rendering.Recorder.
func (r *Recorder) ObserveRender(layout string, mode rendering.Mode, outcome string, d time.Duration) {
	r.renders.WithLabelValues(layout, string(mode), outcome).Inc()
	r.renderDuration.WithLabelValues(layout, string(mode)).Observe(d.Seconds())
}

// ObserveTemplateRefresh implementa templates.RefreshObserver.
func (r *Recorder) ObserveTemplateRefresh(outcome string, count int) {
	r.refreshes.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		r.customTemplates.Set(float64(count))
	}
}

// ObserveHTTP registra una petición ya respondida.
func (r *Recorder) ObserveHTTP(method, route string, status int, d time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

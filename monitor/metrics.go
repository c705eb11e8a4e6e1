package monitor

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"hemtjan.st/solarmax/maxcomm"
)

// Metrics collects request statistics and the most recent readings.
type Metrics struct {
	registry *prometheus.Registry

	Exchanges *prometheus.CounterVec
	Duration  prometheus.Histogram
	Online    *prometheus.GaugeVec
	Values    *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Exchanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "solarmax_exchanges_total",
			Help: "Request/reply round trips by outcome",
		}, []string{"device", "result"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "solarmax_exchange_duration_seconds",
			Help:    "Time from sending a request until the reply was parsed",
			Buckets: []float64{.05, .1, .25, .5, 1, 2, 3, 5},
		}),
		Online: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "solarmax_device_online",
			Help: "Whether the last poll of the device got a reply",
		}, []string{"device"}),
		Values: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "solarmax_value",
			Help: "Last decoded numeric value per field",
		}, []string{"device", "field", "unit"}),
	}
	m.registry.MustRegister(m.Exchanges, m.Duration, m.Online, m.Values)
	return m
}

// ObserveExchange implements maxcomm.Observer.
func (m *Metrics) ObserveExchange(dest int, took time.Duration, err error) {
	m.Duration.Observe(took.Seconds())
	m.Exchanges.WithLabelValues(strconv.Itoa(dest), Result(err)).Inc()
}

// Result classifies err into a short label value.
func Result(err error) string {
	kinds := []struct {
		err   error
		label string
	}{
		{maxcomm.ErrNoReply, "no_reply"},
		{maxcomm.ErrChecksum, "checksum"},
		{maxcomm.ErrLength, "length"},
		{maxcomm.ErrFraming, "framing"},
		{maxcomm.ErrTruncated, "truncated"},
		{maxcomm.ErrUnknownField, "unknown_field"},
		{maxcomm.ErrMalformedNumber, "malformed_number"},
	}
	if err == nil {
		return "ok"
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.label
		}
	}
	return "error"
}

// SetOnline records whether dest answered the last poll.
func (m *Metrics) SetOnline(dest int, online bool) {
	v := 0.0
	if online {
		v = 1
	}
	m.Online.WithLabelValues(strconv.Itoa(dest)).Set(v)
}

// Record stores every numeric value of p.
func (m *Metrics) Record(dest int, p *maxcomm.Packet) {
	for _, it := range p.Payload {
		if !it.HasValue {
			continue
		}
		v, err := it.Field.Decode(it.Value)
		if err != nil {
			continue
		}
		var f float64
		switch n := v.(type) {
		case int:
			f = float64(n)
		case float64:
			f = n
		default:
			continue
		}
		m.Values.WithLabelValues(strconv.Itoa(dest), it.Field.ID, it.Field.UnitLabel()).Set(f)
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes the metrics on addr until the listener fails.
func (m *Metrics) Serve(addr string, log logrus.FieldLogger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	log.Infof("Serving metrics on %s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Error("Metrics server stopped")
	}
}

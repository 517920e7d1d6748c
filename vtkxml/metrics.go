package vtkxml

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts decoder activity. One Metrics value may be shared by any
// number of parsers; create it once per registerer.
type Metrics struct {
	documents     prometheus.Counter
	arrays        *prometheus.CounterVec
	appendedBytes prometheus.Counter
	failures      *prometheus.CounterVec
}

// NewMetrics creates the decoder metrics and registers them with reg.
// A nil reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		documents: f.NewCounter(prometheus.CounterOpts{
			Namespace: "vtkxml",
			Name:      "documents_decoded_total",
			Help:      "Total number of documents decoded successfully.",
		}),
		arrays: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vtkxml",
			Name:      "arrays_decoded_total",
			Help:      "Total number of data arrays decoded, by format.",
		}, []string{"format"}),
		appendedBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "vtkxml",
			Name:      "appended_data_bytes_total",
			Help:      "Total number of bytes of decoded appended data.",
		}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vtkxml",
			Name:      "decode_failures_total",
			Help:      "Total number of failed decodes, by error kind.",
		}, []string{"kind"}),
	}
}

func (m *Metrics) observeArray(format string) {
	m.arrays.WithLabelValues(format).Inc()
}

func (m *Metrics) observeFailure(err error) {
	m.failures.WithLabelValues(errorKind(err)).Inc()
}

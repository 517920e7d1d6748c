package vtkxml

import (
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/robert-malhotra/go-vtkxml/internal/patch"
)

// Option configures a Parser or Decoder.
type Option func(*options)

type options struct {
	logger    log.Logger
	metrics   *Metrics
	chunkSize int
}

func defaultOptions() *options {
	return &options{
		logger:    log.NewNopLogger(),
		chunkSize: patch.DefaultChunkSize,
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(nil)
	}
	return o
}

// WithLogger sets the logger used for debug output.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRegisterer registers a new set of decoder metrics with reg. Use
// WithMetrics to share one set between parsers on the same registerer.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.metrics = NewMetrics(reg)
	}
}

// WithMetrics sets the metrics updated while decoding.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithChunkSize sets the number of bytes Parse and ParseFile read at a time.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithConfig applies the decoder settings of cfg.
func WithConfig(cfg Config) Option {
	return WithChunkSize(cfg.ChunkSize)
}

// Package metrics expone los contadores Prometheus del motor de asientos.
// Los colectores son package-level y se registran una sola vez; el recorder
// implementa los puertos PostingMetrics de los use cases.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/AcroChem-api/internal/application/ledger"
)

var (
	// entriesPosted cuenta asientos confirmados por tipo de movimiento.
	entriesPosted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_entries_posted_total",
			Help: "Asientos del libro confirmados, por tipo de movimiento",
		},
		[]string{"kind"},
	)

	// postingsRejected cuenta registros rechazados antes de escribir.
	postingsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_postings_rejected_total",
			Help: "Registros rechazados sin escribir nada, por motivo",
		},
		[]string{"reason"},
	)
)

var _ ledger.PostingMetrics = (*Recorder)(nil)

// Recorder implementación Prometheus de los puertos PostingMetrics.
type Recorder struct{}

// NewRecorder registra los colectores (idempotente para tests) y devuelve el recorder.
func NewRecorder() *Recorder {
	for _, c := range []prometheus.Collector{entriesPosted, postingsRejected} {
		if err := prometheus.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
	return &Recorder{}
}

// EntryPosted incrementa el contador de asientos confirmados.
func (Recorder) EntryPosted(kind string) {
	entriesPosted.WithLabelValues(kind).Inc()
}

// PostingRejected incrementa el contador de rechazos.
func (Recorder) PostingRejected(reason string) {
	postingsRejected.WithLabelValues(reason).Inc()
}
